package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wayfare/cmd/fx/itinerary_fx"
	"wayfare/internal/infra"
	"wayfare/internal/repositories"
	"wayfare/internal/services"
)

var (
	listOwner    string
	listPage     int
	listPageSize int
	moveDelta    int64
	outputJSON   bool
)

func init() {
	listCmd.Flags().StringVar(&listOwner, "owner", "", "owner account id (required)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "page size")
	_ = listCmd.MarkFlagRequired("owner")

	moveCmd.Flags().Int64Var(&moveDelta, "delta", 0, "shift in minutes, negative moves earlier (required)")
	_ = moveCmd.MarkFlagRequired("delta")

	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "emit JSON instead of text")

	rootCmd.AddCommand(listCmd, showCmd, validateCmd, moveCmd)
}

// newItineraryService opens a database connection and wires the service
// stack the same way the HTTP binary does.
func newItineraryService() services.ItineraryServiceInterface {
	db := infra.InitPostgresql()
	repo := repositories.NewItineraryRepository(db)
	engine := itinerary_fx.ProvideRuleEngine()
	return services.NewItineraryService(repo, engine)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List itineraries belonging to an owner",
	Run: func(cmd *cobra.Command, args []string) {
		service := newItineraryService()
		items, err := service.ListItinerariesByOwner(context.Background(), listPage, listPageSize, listOwner)
		if err != nil {
			fail(err)
		}
		if outputJSON {
			printJSON(items)
			return
		}
		for _, it := range items {
			fmt.Printf("%s  %-10s v%-3d %s\n", it.ID, it.Status, it.Version, it.Title)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <itinerary-id>",
	Short: "Show one itinerary with its segments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newItineraryService()
		detail, err := service.GetItineraryById(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		if outputJSON {
			printJSON(detail)
			return
		}
		fmt.Printf("%s (%s, version %d)\n", detail.Title, detail.Status, detail.Version)
		if detail.StartDate != "" {
			fmt.Printf("Trip dates: %s to %s\n", detail.StartDate, detail.EndDate)
		}
		for _, seg := range detail.Segments {
			fmt.Printf("  %s  %-8s %s -> %s  %s\n", seg.ID, seg.Kind, seg.StartTime, seg.EndTime, seg.Name)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <itinerary-id>",
	Short: "Run the full rule catalog against every segment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newItineraryService()
		reviews, err := service.ReviewItinerary(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		if outputJSON {
			printJSON(reviews)
			return
		}
		clean := true
		for _, review := range reviews {
			issues := len(review.Verdict.Errors) + len(review.Verdict.Warnings) + len(review.Verdict.Info)
			if issues == 0 {
				continue
			}
			clean = false
			fmt.Printf("%s  %s\n", review.Segment.ID, review.Segment.Name)
			for _, issue := range review.Verdict.Errors {
				fmt.Printf("  ERROR   %s: %s\n", issue.RuleID, issue.Message)
			}
			for _, issue := range review.Verdict.Warnings {
				fmt.Printf("  WARNING %s: %s\n", issue.RuleID, issue.Message)
			}
			for _, issue := range review.Verdict.Info {
				fmt.Printf("  INFO    %s: %s\n", issue.RuleID, issue.Message)
			}
		}
		if clean {
			fmt.Println("No issues found.")
		}
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <itinerary-id> <segment-id>",
	Short: "Shift a segment and its dependents by a number of minutes",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		service := newItineraryService()
		result, err := service.MoveSegment(context.Background(), args[0], args[1], moveDelta)
		if err != nil {
			fail(err)
		}
		if outputJSON {
			printJSON(result)
			return
		}
		if result.ConflictWarning != "" {
			fmt.Printf("Warning: %s\n", result.ConflictWarning)
		}
		fmt.Printf("Moved %d segment(s):\n", len(result.Segments))
		for _, seg := range result.Segments {
			fmt.Printf("  %s  %-8s %s -> %s  %s\n", seg.ID, seg.Kind, seg.StartTime, seg.EndTime, seg.Name)
		}
	},
}
