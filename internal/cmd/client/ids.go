package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/pkg/id"
)

const rpcTimeout = 10 * time.Second

// NewIDCommand constructs the `id` command group.
func NewIDCommand() *cobra.Command {
	idCmd := &cobra.Command{Use: "id", Short: "Mint and inspect IDs"}
	idCmd.AddCommand(newIDNextCommand(), newIDDecodeCommand())
	return idCmd
}

func newIDNextCommand() *cobra.Command {
	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Mint one or more IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			hex, _ := cmd.Flags().GetBool("hex")
			if count < 1 {
				return fmt.Errorf("--count must be >= 1")
			}
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			var ids []id.ID
			err := withIDClient(func(cli flakev1.IDServiceClient) error {
				if count == 1 {
					v, err := cli.Next(ctx, &emptypb.Empty{})
					if err != nil {
						return err
					}
					ids = []id.ID{id.ID(v.GetValue())}
					return nil
				}
				out, err := cli.NextBatch(ctx, wrapperspb.UInt32(uint32(count)))
				if err != nil {
					return err
				}
				ids, err = flakev1.IDListFromValue(out)
				return err
			})
			if err != nil {
				return err
			}
			for _, v := range ids {
				if hex {
					fmt.Fprintln(cmd.OutOrStdout(), "0x"+v.Hex())
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	nextCmd.Flags().Int("count", 1, "Number of IDs to mint")
	nextCmd.Flags().Bool("hex", false, "Print IDs as 0x-prefixed hex")
	return nextCmd
}

func newIDDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Split an ID into timestamp, datacenter, machine and sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := id.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd.Context())
			defer cancel()
			return withIDClient(func(cli flakev1.IDServiceClient) error {
				out, err := cli.Decompose(ctx, wrapperspb.UInt64(uint64(v)))
				if err != nil {
					return err
				}
				parts, err := flakev1.IDPartsFromStruct(out)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"id":           parts.ID,
					"hex":          "0x" + parts.ID.Hex(),
					"timestamp":    parts.Timestamp,
					"datacenterId": parts.DatacenterID,
					"machineId":    parts.MachineID,
					"sequence":     parts.Sequence,
					"time":         parts.Time,
				})
			})
		},
	}
}
