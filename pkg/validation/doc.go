// Package validation checks user-supplied identifiers.
//
// Tab IDs, tool kinds and scenario names are restricted to ASCII letters,
// digits, hyphen and underscore. Scenario names double as file names in
// the scenario store, so the restriction also keeps them inside it.
package validation
