package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"robo-advisor-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var implementationStatuses = map[string]bool{
	"planned":     true,
	"in-progress": true,
	"completed":   true,
	"verified":    true,
}

func newRegistryCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and maintain the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "Path to registry file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Validate required fields, timeouts and input schemas",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return fmt.Errorf("failed to load registry: %w", err)
				}
				if err := reg.Validate(); err != nil {
					return fmt.Errorf("registry validation failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered task types",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return fmt.Errorf("failed to load registry: %w", err)
				}
				rows := make([]map[string]interface{}, 0, len(reg.Activities))
				for _, taskType := range reg.TaskTypes() {
					a, _ := reg.Find(taskType)
					rows = append(rows, map[string]interface{}{
						"taskType": a.TaskType,
						"category": a.Category,
						"status":   a.ImplementationStatus,
						"timeout":  a.Timeout,
						"retries":  a.Retries,
					})
				}
				return render(cmd, rows)
			},
		},
		newSetStatusCmd(&path),
		newCheckCmd(&path),
	)
	return cmd
}

func newSetStatusCmd(path *string) *cobra.Command {
	var taskType, status string

	cmd := &cobra.Command{
		Use:   "set-status",
		Short: "Update an activity's implementation status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !implementationStatuses[status] {
				return fmt.Errorf("invalid status %q (planned, in-progress, completed, verified)", status)
			}
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			activity, ok := reg.Find(taskType)
			if !ok {
				return fmt.Errorf("activity with task type %s not found", taskType)
			}

			activity.ImplementationStatus = status
			reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
			if err := registry.SaveRegistry(reg, *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s status to %s\n", taskType, status)
			return nil
		},
	}
	cmd.Flags().StringVar(&taskType, "task-type", "", "Task type to update")
	cmd.Flags().StringVar(&status, "status", "", "New implementation status")
	_ = cmd.MarkFlagRequired("task-type")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

// newCheckCmd validates a job variables file the way the worker runtime
// does before decoding.
func newCheckCmd(path *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check <task-type>",
		Short: "Validate a job variables JSON file against a task type's input schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if _, ok := reg.Find(args[0]); !ok {
				return fmt.Errorf("unknown task type %s", args[0])
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var vars map[string]interface{}
			if err := json.Unmarshal(data, &vars); err != nil {
				return fmt.Errorf("parse variables: %w", err)
			}

			if err := reg.ValidateInput(args[0], vars); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Variables are valid for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Job variables JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
