package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/catalog"
)

// submissionFlags binds the shared upload fields onto a command.
func submissionFlags(cmd *cobra.Command, sub *catalog.Submission) {
	cmd.Flags().StringVar(&sub.Title, "title", "", "listing title (required)")
	cmd.Flags().StringVar(&sub.Location, "location", "", "property location")
	cmd.Flags().StringVar(&sub.Size, "size", "", "property size, free text")
	cmd.Flags().StringVar(&sub.Price, "price", "", "asking price")
	cmd.Flags().StringVar(&sub.Description, "description", "", "description")
	cmd.Flags().StringVar(&sub.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&sub.ImagePath, "image", "", "path to an image file")
}

func newSubmitLandCmd() *cobra.Command {
	var sub catalog.Submission

	cmd := &cobra.Command{
		Use:   "submit-land",
		Short: "Submit a land-for-sale listing",
		Long:  "Upload a new land-for-sale listing to the marketplace. Requires login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(catalog.KindSale, sub)
		},
	}

	submissionFlags(cmd, &sub)
	return cmd
}

func newSubmitRentCmd() *cobra.Command {
	var sub catalog.Submission

	cmd := &cobra.Command{
		Use:   "submit-rent",
		Short: "Submit a land-for-rent listing",
		Long:  "Upload a new rental listing to the marketplace. Requires login.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(catalog.KindRental, sub)
		},
	}

	submissionFlags(cmd, &sub)
	cmd.Flags().StringVar(&sub.Duration, "duration", "", `rental duration, e.g. "6 months"`)
	cmd.Flags().StringVar(&sub.RentType, "rent-type", "", "rental type, free text")

	return cmd
}

func runSubmit(kind catalog.Kind, sub catalog.Submission) error {
	if sub.Title == "" {
		return fmt.Errorf("--title is required")
	}

	if err := newCatalogClient().SubmitListing(kind, sub); err != nil {
		return err
	}

	fmt.Println("✓ Listing uploaded.")
	return nil
}
