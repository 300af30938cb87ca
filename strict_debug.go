//go:build dictdebug

package dict

// Built with -tags dictdebug: membership errors abort by default.
const strictDefault = true
