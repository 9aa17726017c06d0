// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

func candidateFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Usage:    "Full name",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "email",
			Aliases:  []string{"e"},
			Usage:    "Email address",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "address",
			Aliases:  []string{"a"},
			Usage:    "Postal address",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "phone",
			Aliases:  []string{"p"},
			Usage:    "Phone number",
			Required: required,
		},
	}
}

// employeesCommand handles roster operations against the remote service
func employeesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "employees",
		Aliases: []string{"emp"},
		Usage:   "Employee roster operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List one page of employees",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Case-insensitive filter over name, email, address, phone and id",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: newest or oldest (default from config)",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number; out of range pages are clamped",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Records per page (default from config)",
					},
				}, outputFlags()...),
				Action: r.ListEmployees,
			},
			{
				Name:      "get",
				Usage:     "Fetch employees by id",
				ArgsUsage: "<id> [id...]",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent lookups",
						Value: 4,
					},
				}, outputFlags()...),
				Action: r.GetEmployees,
			},
			{
				Name:   "add",
				Usage:  "Create an employee",
				Flags:  append(candidateFlags(true), outputFlags()...),
				Action: r.AddEmployee,
			},
			{
				Name:  "edit",
				Usage: "Update an employee; unset fields keep their current value",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  append(candidateFlags(false), outputFlags()...),
				Action: r.EditEmployee,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete an employee",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.DeleteEmployee,
			},
			{
				Name:  "check",
				Usage: "Report which fields of a record would duplicate an existing employee",
				Flags: append(append(candidateFlags(false),
					&cli.StringFlag{
						Name:  "exclude",
						Usage: "Id of the record being edited, ignored when comparing",
					},
				), outputFlags()...),
				Action: r.CheckEmployee,
			},
			{
				Name:  "export",
				Usage: "Export every matching employee to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text, json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: employees.{ext})",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Case-insensitive filter over name, email, address, phone and id",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: newest or oldest (default from config)",
					},
				},
				Action: r.ExportEmployees,
			},
		},
	}
}

// tuiCommand launches the interactive roster
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and edit the roster interactively",
		Action: r.TUI,
	}
}

// serveCommand runs the local sandbox employee service
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local employee service backed by SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from server config)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database path (default from database config)",
			},
		},
		Action: r.Serve,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and the sandbox database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file populated with defaults",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the sandbox database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent sandbox database migration",
				Action: r.RollbackDatabase,
			},
		},
	}
}
