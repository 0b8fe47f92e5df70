package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/softwrhq/hurricane/internal/app"
	"github.com/softwrhq/hurricane/internal/hurricane"
)

func authCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in with Google",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "url",
		Short: "Print the Google consent URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				_, err := rt.Client.AuthURL(ctx)
				return err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "finish CODE",
		Short: "Exchange the code from the consent redirect for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				res, err := rt.Client.FinishAuth(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, flags, res, func(w *tabwriter.Writer) {
					fmt.Fprintf(w, "Signed in\t%s\n", res.Intent)
				})
			})
		},
	})

	return cmd
}

func profileCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				user, err := rt.Client.Profile(ctx)
				if err != nil {
					return err
				}
				return printResult(cmd, flags, user, func(w *tabwriter.Writer) {
					fmt.Fprintf(w, "ID\t%d\n", user.ID)
					fmt.Fprintf(w, "Name\t%s\n", user.FullName)
					fmt.Fprintf(w, "Email\t%s\n", user.Email)
					fmt.Fprintf(w, "Role\t%s\n", user.UserRole)
					fmt.Fprintf(w, "Created\t%s\n", user.CreatedAt)
				})
			})
		},
	}
}

func accountCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or change the account and subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				user, err := rt.Client.UserWithSubscription(ctx)
				if err != nil {
					return err
				}
				return printAccount(cmd, flags, user)
			})
		},
	}

	var name, email string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name and email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				user, err := rt.Client.UpdateUser(ctx, name, email)
				if err != nil {
					return err
				}
				return printAccount(cmd, flags, user)
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&email, "email", "", "email address")
	_ = update.MarkFlagRequired("name")
	_ = update.MarkFlagRequired("email")

	var current, next, confirm string
	password := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				_, err := rt.Client.UpdateUserPassword(ctx, current, next, confirm)
				return err
			})
		},
	}
	password.Flags().StringVar(&current, "current", "", "current password")
	password.Flags().StringVar(&next, "new", "", "new password")
	password.Flags().StringVar(&confirm, "confirm", "", "new password again")
	for _, f := range []string{"current", "new", "confirm"} {
		_ = password.MarkFlagRequired(f)
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return rt.Client.Logout(ctx)
			})
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete the account without --yes")
			}
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return rt.Client.DeleteUser(ctx)
			})
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(update, password, logout, del)
	return cmd
}

func printAccount(cmd *cobra.Command, flags *globalFlags, user hurricane.UserWithSubscription) error {
	return printResult(cmd, flags, user, func(w *tabwriter.Writer) {
		status := user.Status()
		if status == "" {
			status = "none"
		}
		fmt.Fprintf(w, "Name\t%s\n", user.FullName)
		fmt.Fprintf(w, "Email\t%s\n", user.Email)
		fmt.Fprintf(w, "Subscription\t%s\n", status)
		fmt.Fprintf(w, "Searches\t%s\n", user.SearchUsage())
		if end := deref(user.TrialEndDate); end != "" && status == hurricane.SubscriptionTrial {
			fmt.Fprintf(w, "Trial ends\t%s\n", end)
		}
		if next := deref(user.SubscriptionEndDate); next != "" {
			fmt.Fprintf(w, "Renews\t%s\n", next)
		}
	})
}

func projectCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project description used to match leads",
	}

	var name, website, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return rt.Client.CreateProject(ctx, name, website, description)
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "project name")
	create.Flags().StringVar(&website, "url", "", "website URL")
	create.Flags().StringVar(&description, "description", "", "what the project does")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}

func contactCmd(flags *globalFlags) *cobra.Command {
	var name, email, subject, message string
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the Hurricane team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return rt.Client.CreateContact(ctx, name, email, subject, message)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "reply address")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message body")
	for _, f := range []string{"name", "email", "message"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func feedbackCmd(flags *globalFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "feedback MESSAGE",
		Short: "Send product feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd, flags, func(ctx context.Context, rt *app.Runtime) error {
				return rt.Client.CreateFeedback(ctx, kind, args[0])
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "general", "feedback type (general, bug, feature)")
	return cmd
}
