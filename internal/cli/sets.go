package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List and create flashcard sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, release, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			sets, err := st.ListSets(cmd.Context())
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				fmt.Println("No flashcard sets found.")
				fmt.Println("Use 'flashdeckctl sets create <title>' to add one.")
				return nil
			}

			for _, set := range sets {
				cards, err := st.GetCollection(cmd.Context(), set.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%4d  %-40s %d cards\n", set.ID, set.Title, len(cards))
			}
			return nil
		},
	}

	cmd.AddCommand(newSetsCreateCmd(opts))
	return cmd
}

func newSetsCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new empty flashcard set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, release, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			set, err := st.CreateSet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created set %d: %s\n", set.ID, set.Title)
			return nil
		},
	}
}
