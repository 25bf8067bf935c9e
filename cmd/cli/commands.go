package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var eventID string

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(participantsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(metricsCmd)

	participantsCmd.Flags().StringVar(&eventID, "event", "", "The event id")
	teamsCmd.Flags().StringVar(&eventID, "event", "", "The event id")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the open events",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/events")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var participantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "List the confirmed participants for an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/participants?event_id=" + eventID)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the formed teams for an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams?event_id=" + eventID)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
