//go:build checksdebug

package checks

const failLoud = true
