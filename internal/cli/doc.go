// Package cli implements the vitals command line.
//
// Commands:
//
//	dashboard   full-screen terminal dashboard (alias: watch)
//	render      one live and historical cycle written out as PNG files
//	status      one live cycle printed as a classified table
//	init        create or update a .vitals.yaml
//	version     build information
//	completion  shell completion scripts
//
// Every command loads configuration through config.LoadOrDefault; the
// persistent --url flag overrides source.url for a single invocation.
package cli
