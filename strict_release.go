//go:build !dictdebug

package dict

const strictDefault = false
