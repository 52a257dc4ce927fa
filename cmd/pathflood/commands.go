package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vertex-lab/pathflood/pkg/cluster"
	"github.com/vertex-lab/pathflood/pkg/flood"
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/topology"
	"golang.org/x/sync/errgroup"
)

var (
	config *Config

	// flags overriding the environment
	topologyPath string
	busKind      string
	windowMillis int

	searchFrom string
	searchTo   string
	nodeName   string
)

var (
	rootCmd = &cobra.Command{
		Use:   "pathflood",
		Short: "Decentralized shortest path search by flooding",
		Long: `pathflood runs one actor per graph node. Actors only know their neighbours:
the initiator floods a search request, every actor answers or forwards it, and the
initiator reports the lightest paths it collected within the collection window.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config != nil {
				config.CloseLogs()
			}
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Run every node of the topology in this process and print the search results",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run a single node of the topology on the Redis bus",
		Args:  cobra.NoArgs,
		RunE:  runNode,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the configuration loaded from the environment and flags",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config.Print()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&topologyPath, "topology", "", "topology file (.yaml, .dot) or directory of node descriptors")
	rootCmd.PersistentFlags().StringVar(&busKind, "bus", "", "message bus, \"local\" or \"redis\"")
	rootCmd.PersistentFlags().IntVar(&windowMillis, "window", 0, "collection window in milliseconds")

	searchCmd.Flags().StringVar(&searchFrom, "from", "", "node that initiates the search")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "target of the search")
	searchCmd.MarkFlagsRequiredTogether("from", "to")

	nodeCmd.Flags().StringVar(&nodeName, "name", "", "name of the node to run")
	nodeCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(searchCmd, nodeCmd, configCmd)
}

// setup() loads the config from the environment and applies the flags on top of it.
func setup(cmd *cobra.Command, args []string) error {
	if err := loadEnvFile(); err != nil {
		return err
	}

	var err error
	config, err = LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("topology") {
		config.Topology = topologyPath
	}
	if flags.Changed("bus") {
		config.Bus = busKind
	}
	if flags.Changed("window") {
		config.Node.CollectionWindow = time.Duration(windowMillis) * time.Millisecond
	}

	if cmd == nodeCmd {
		// a lone node can only reach its neighbours through Redis
		config.Bus = BusRedis
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if config.DisplayConfig {
		config.Print()
	}
	return nil
}

func loadTopology() (topology.Topology, error) {
	if config.Topology == "" {
		return topology.Topology{}, ErrMissingTopology
	}
	return topology.Load(config.Topology)
}

// runSearch() starts every node of the topology and runs either the search specified by the flags
// or the searches of all the initiators of the topology.
func runSearch(cmd *cobra.Command, args []string) error {
	topo, err := loadTopology()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(ctx, cancel, config.Log)

	stopMetrics := serveMetrics(config.MetricsAddr, config.Log)
	defer stopMetrics()

	bus, release, err := setupBus(ctx, config)
	if err != nil {
		return err
	}
	defer release()

	c, err := cluster.Start(ctx, topo, bus, config.Log, config.Node)
	if err != nil {
		return err
	}
	defer c.Stop()

	var results []*flood.Result
	if searchFrom != "" {
		var result *flood.Result
		result, err = c.Search(ctx, searchFrom, searchTo)
		results = append(results, result)
	} else {
		results, err = c.SearchInitiators(ctx)
	}

	if errors.Is(err, models.ErrSearchAborted) {
		config.Log.Warn("search interrupted before the end of the collection window")
		return nil
	}
	if err != nil {
		return err
	}

	for _, result := range results {
		if err := result.Report(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}

// runNode() runs one node on the Redis bus until a signal is received.
// If the node is an initiator, it waits StartDelay and then runs its search.
func runNode(cmd *cobra.Command, args []string) error {
	topo, err := loadTopology()
	if err != nil {
		return err
	}

	descriptor, exists := topo.Node(nodeName)
	if !exists {
		return fmt.Errorf("node %s is not in the topology %s", nodeName, config.Topology)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(ctx, cancel, config.Log)

	stopMetrics := serveMetrics(config.MetricsAddr, config.Log)
	defer stopMetrics()

	bus, release, err := setupBus(ctx, config)
	if err != nil {
		return err
	}
	defer release()

	node, err := flood.NewNode(ctx, descriptor.Name, descriptor.Neighbours, bus, config.Log, config.Node)
	if err != nil {
		return err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return node.Run(gctx)
	})

	if descriptor.Initiator {
		group.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(config.StartDelay):
			}

			result, err := node.Search(gctx, descriptor.Target)
			if errors.Is(err, models.ErrSearchAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			return result.Report(cmd.OutOrStdout())
		})
	}

	config.Log.Info("node %s is running, press Ctrl+C to stop", node.Name())
	return group.Wait()
}
