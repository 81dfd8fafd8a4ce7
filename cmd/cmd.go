package main

import (
	"github.com/urfave/cli/v3"
)

// carsCommand handles catalog browsing.
func carsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "cars",
		Aliases: []string{"car", "c"},
		Usage:   "Browse the car catalog",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List cars, marking those in your comparison or wishlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter by name",
					},
					&cli.BoolFlag{
						Name:  "featured",
						Usage: "Only featured cars",
					},
					&cli.Int64Flag{
						Name:  "brand",
						Usage: "Only cars of this brand ID",
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Read from the local cache instead of the API",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CarsList,
			},
			{
				Name:  "show",
				Usage: "Show every detail of a car",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the car image in the browser",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Download the car image to this path",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CarsShow,
			},
			{
				Name:    "availability",
				Aliases: []string{"avail"},
				Usage:   "Check whether a car can be booked for a date range",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "pickup",
						Usage:    "Pickup date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "return",
						Usage:    "Return date (YYYY-MM-DD)",
						Required: true,
					},
				},
				Action: r.CarsAvailability,
			},
			{
				Name:  "reviews",
				Usage: "Show what renters said about a car",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CarsReviews,
			},
		},
	}
}

// bookingsCommand manages the user's reservations. Payment is completed on the website.
func bookingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Aliases: []string{"booking", "b"},
		Usage:   "Book cars and manage your reservations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your bookings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BookingsList,
			},
			{
				Name:  "show",
				Usage: "Show one booking",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BookingsShow,
			},
			{
				Name:  "create",
				Usage: "Book a car for a date range",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "car"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "pickup",
						Usage:    "Pickup date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "return",
						Usage:    "Return date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the created booking as JSON",
					},
				},
				Action: r.BookingsCreate,
			},
			{
				Name:  "cancel",
				Usage: "Cancel a pending booking",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.BookingsCancel,
			},
		},
	}
}

// brandsCommand lists manufacturers.
func brandsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "brands",
		Usage: "Browse car brands",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List brands that have at least one car",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BrandsList,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the access token locally",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Sources:  cli.EnvVars("RENT_PASSWORD"),
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Sources:  cli.EnvVars("RENT_PASSWORD"),
						Required: true,
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email address",
					},
					&cli.StringFlag{
						Name:  "first-name",
						Usage: "First name",
					},
					&cli.StringFlag{
						Name:  "last-name",
						Usage: "Last name",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored access token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the current session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the profile as JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "profile",
				Usage: "Manage your profile",
				Commands: []*cli.Command{
					{
						Name:  "update",
						Usage: "Change profile fields",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "email",
								Usage: "Email address",
							},
							&cli.StringFlag{
								Name:  "first-name",
								Usage: "First name",
							},
							&cli.StringFlag{
								Name:  "last-name",
								Usage: "Last name",
							},
						},
						Action: r.AuthProfileUpdate,
					},
				},
			},
			{
				Name:  "password",
				Usage: "Change your password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "old",
						Usage:    "Current password",
						Required: true,
						Sources:  cli.EnvVars("RENT_PASSWORD"),
					},
					&cli.StringFlag{
						Name:     "new",
						Usage:    "New password, at least 8 characters",
						Required: true,
						Sources:  cli.EnvVars("RENT_NEW_PASSWORD"),
					},
				},
				Action: r.AuthPassword,
			},
		},
	}
}

// compareCommand manages the local comparison list.
func compareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "compare",
		Aliases: []string{"cmp"},
		Usage:   "Compare up to three cars side by side",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a car to the comparison",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CompareAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a car from the comparison",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CompareRemove,
			},
			{
				Name:   "clear",
				Usage:  "Remove every car from the comparison",
				Action: r.CompareClear,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the cars selected for comparison",
				Action:  r.CompareList,
			},
			{
				Name:  "show",
				Usage: "Render the comparison table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, markdown, csv, json)",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write to comparison.{ext} in the current directory",
					},
				},
				Action: r.CompareShow,
			},
		},
	}
}

// wishlistCommand proxies wishlist changes to the server.
func wishlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "wishlist",
		Aliases: []string{"wl"},
		Usage:   "Manage your saved cars",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved cars",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WishlistList,
			},
			{
				Name:  "add",
				Usage: "Save a car to your wishlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.WishlistAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a car from your wishlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.WishlistRemove,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml with default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// cacheCommand inspects the local car snapshot cache.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and prune cached car snapshots",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show how many cars are cached",
				Action: r.CacheStatus,
			},
			{
				Name:  "purge",
				Usage: "Delete snapshots older than a duration",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Age after which snapshots are deleted (0 deletes all)",
						Value: 0,
					},
				},
				Action: r.CachePurge,
			},
		},
	}
}

// apiCommand handles direct API access for debugging.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API access",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Make a GET request to the API",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive car browser",
		Action:  r.TUI,
	}
}
