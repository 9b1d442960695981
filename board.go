package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"helyi-torpe/handler"
	"helyi-torpe/minesweeper"
)

func minesweeperCmd() *cobra.Command {
	var (
		size, mines int
		seed        uint64
		discord     bool
	)

	cmd := &cobra.Command{
		Use:   "minesweeper",
		Short: "Print a generated board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src := handler.NewSource()
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewPCG(seed, seed))
			}

			b, err := minesweeper.Generate(size, mines, src)
			if err != nil {
				return err
			}

			if discord {
				txt, err := minesweeper.Render(b)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), txt)
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), plain(b))
			return err
		},
	}

	cmd.Flags().IntVar(&size, "size", 9, "side length of the board")
	cmd.Flags().IntVar(&mines, "mines", 10, "number of mines")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible board")
	cmd.Flags().BoolVar(&discord, "discord", false, "print the message the bot would send")

	return cmd
}

// plain draws mines as '*', empty cells as '.' and counts as digits.
func plain(b *minesweeper.Board) string {
	var sb strings.Builder
	for _, row := range b.Rows() {
		for x, c := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			switch {
			case c.IsMine():
				sb.WriteByte('*')
			case c.Count() == 0:
				sb.WriteByte('.')
			default:
				fmt.Fprintf(&sb, "%d", c.Count())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
