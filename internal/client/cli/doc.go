// Package cli provides the interactive AutoKeeper command-line client.
//
// It wires configuration, the local session database and the HTTP API
// client, then runs a REPL until the user exits. Commands that act on a
// vehicle take its id as the first argument and prompt for anything
// missing:
//
//	vehicles                     list vehicles
//	addvehicle                   add a vehicle
//	fuel <vehicleId>             list fuel logs
//	addfuel <vehicleId>          add a fuel log
//	services <vehicleId>         list service logs
//	addservice <vehicleId>       add a service log
//	receipt <vehicleId> <logId> [file]
//	                             upload a receipt, or print a download link
//	reminders <vehicleId> [all|active|completed]
//	addreminder <vehicleId>      add a reminder
//	complete <vehicleId> <id>    mark a reminder completed
//
// Sessions survive restarts; expired access tokens are refreshed
// transparently by the API client.
package cli
