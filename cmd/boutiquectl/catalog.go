package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"boutique_hotel/internal/adapters/geodata"
	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the hotel catalog",
	Long:  `Reads the geo collections the same way the API does. No database needed.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog hotels",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [hotel-id]",
	Short: "Print one hotel as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the region names accepted by --region",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, r := range domain.Regions {
			cmd.Println(string(r))
		}
	},
}

var (
	catalogRegion string
	catalogQuery  string
	catalogStars  string
)

func init() {
	catalogListCmd.Flags().StringVar(&catalogRegion, "region", "", "region name, e.g. \"Southern Europe\"")
	catalogListCmd.Flags().StringVarP(&catalogQuery, "query", "q", "", "free-text search over name, location and country")
	catalogListCmd.Flags().StringVar(&catalogStars, "stars", "", "exact star label, e.g. \"4 sterren\"")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogRegionsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalog() *app.CatalogService {
	return app.NewCatalogService(geodata.Dir(or(geoDir, or(cfg.GeoDataDir, "data/geo"))))
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	svc := catalog()

	var hotels []domain.Hotel
	switch {
	case catalogRegion != "":
		hotels = svc.ByRegion(domain.Region(catalogRegion))
	case catalogQuery != "":
		hotels = svc.Search(catalogQuery)
	case catalogStars != "":
		hotels = svc.ByStars(catalogStars)
	default:
		hotels = svc.All()
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tCOUNTRY\tSTARS")
	for _, h := range hotels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.ID, h.Name, h.Location, h.Country, h.Stars)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	cmd.Printf("%d hotels\n", len(hotels))
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	h, ok := catalog().ByID(args[0])
	if !ok {
		return fmt.Errorf("hotel %q not found", args[0])
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}
