// Package html extracts readable text from HTML board papers. Scripts,
// styles and markup are removed; table cells are separated by tabs so
// finance and timesheet tables keep their rows.
package html
