package client

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/pkg/id"
)

// NewUserCommand constructs the `user` command group.
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "Register and inspect users"}
	userCmd.AddCommand(newUserRegisterCommand(), newUserGetCommand(), newUserLoginCommand())
	return userCmd
}

func newUserRegisterCommand() *cobra.Command {
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			fullname, _ := cmd.Flags().GetString("fullname")
			age, _ := cmd.Flags().GetInt32("age")
			address, _ := cmd.Flags().GetString("address")

			req := flakev1.RegisterRequest{Username: username, Password: password, Fullname: fullname, Age: age, Address: address}
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()
			return withUserClient(func(cli flakev1.UserServiceClient) error {
				out, err := cli.Register(ctx, req.ToStruct())
				if err != nil {
					return err
				}
				resp, err := flakev1.RegisterResponseFromStruct(out)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (userId=%s)\n", resp.Message, resp.UserID)
				return nil
			})
		},
	}
	registerCmd.Flags().String("username", "", "Username (required)")
	registerCmd.Flags().String("password", "", "Password (required)")
	registerCmd.Flags().String("fullname", "", "Full name")
	registerCmd.Flags().Int32("age", 0, "Age")
	registerCmd.Flags().String("address", "", "Address")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	return registerCmd
}

func newUserGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := id.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()
			return withUserClient(func(cli flakev1.UserServiceClient) error {
				out, err := cli.GetUser(ctx, wrapperspb.UInt64(uint64(userID)))
				if err != nil {
					return err
				}
				p, err := flakev1.UserProfileFromStruct(out)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"userId":    p.UserID,
					"username":  p.Username,
					"fullname":  p.Fullname,
					"age":       p.Age,
					"address":   p.Address,
					"createdAt": p.CreatedAt,
				})
			})
		},
	}
}

func newUserLoginCommand() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()
			return withUserClient(func(cli flakev1.UserServiceClient) error {
				out, err := cli.Authenticate(ctx, flakev1.Credentials{Username: username, Password: password}.ToStruct())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "authenticated (userId=%s)\n", id.ID(out.GetValue()))
				return nil
			})
		},
	}
	loginCmd.Flags().String("username", "", "Username (required)")
	loginCmd.Flags().String("password", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	return loginCmd
}
