// Package commands implements the m3cd subcommands.
//
// Every command implements Runner: Init parses its flags and loads the
// merge job named by AppContext.ConfigPath, Run does the work through the
// service layer and Name is used by main to dispatch.
//
//   - merge: apply every delta of the job and write the changed config files
//   - validate: decode every delta file without merging
//   - dump: print the config bundle as text, JSON or a spreadsheet
//   - parse-struct: split a struct string into its entries
//   - serve: run the HTTP API over the loaded bundle
//   - watch: merge again whenever the job or a delta file changes
//
// Example:
//
//	cmd := commands.CreateMergeCommand()
//	ctx := &commands.AppContext{ConfigPath: "m3cd.toml"}
//	if err := cmd.Init([]string{"-dry-run"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
