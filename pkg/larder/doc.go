// Package larder provides a two-tier object store with an HTTP client and image loader.
//
// larder offers a unified API for persisting raw byte payloads across a fast
// in-memory tier (bigcache) and a durable on-disk tier, with graceful degradation,
// fire-and-forget disk writes, and observability hooks.
//
// # Features
//
//   - Two-tier Storage: In-memory (bigcache) backed by an on-disk tier with memory-first reads
//   - Fire-and-Forget Writes: Disk persistence happens in the background, off the caller's path
//   - Outcome Results: Loads return a success-or-error sum instead of a bare (value, error) pair
//   - HTTP Client: Fetches JSON bodies and parses them into object-or-array envelopes
//   - Image Loading: Cache-first image fetching with network fallback and background re-save
//   - Observability: Metrics tracking with pluggable recorders and publishers
//
// # Quick Start
//
// Create an object store with default configuration:
//
//	store, err := larder.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Store Operations
//
// Basic save and load operations:
//
//	ctx := context.Background()
//
//	// Save bytes to memory now and disk in the background
//	err := store.Save(ctx, larder.CacheWrite(data), "user:123")
//
//	// Load checks memory first, then disk
//	out := store.Load(ctx, larder.LocationCache, "user:123")
//	out.Fold(func(data []byte) {
//	    // use data
//	}, func(err error) {
//	    // handle miss or failure
//	})
//
// # Storage Locations
//
// Payloads are grouped under locations that map to directories on disk:
//
//   - LocationCache: Re-fetchable data such as API responses and images
//   - LocationDocument: Data that should survive cache eviction
//
// # HTTP Client
//
// Fetch JSON from a configured host and inspect the tagged envelope:
//
//	client, err := larder.NewClient(larder.Config())
//	out := client.Get(ctx, larder.NewEndpoint("/users", url.Values{"page": {"1"}}))
//	env, err := out.Value()
//	if obj, ok := env.Object(); ok {
//	    fmt.Println(obj["name"])
//	}
//
// # Image Loading
//
// The image loader serves from the store when it can and falls back to the network:
//
//	loader, err := larder.NewImageLoader(store, client)
//	rec, err := loader.LoadImage(ctx, "https://example.com/a.png").Value()
//
// Every successful load re-saves the record in the background. Use Settle to wait
// for pending re-saves during shutdown:
//
//	_ = loader.Settle(ctx)
//
// # Observability
//
// The store, client, and loader accept a pluggable metrics recorder:
//
//	store, err := larder.New(
//	    larder.WithMetricsRecorder(recorder),
//	)
//
// Lightweight counters are always available without a recorder:
//
//	stats := store.Stats()
//	fmt.Println(stats.Memory.Hits, stats.Disk.PendingWrites)
//
// # Health Checks
//
// Check the health status of both tiers:
//
//	health, err := store.Health(ctx)
//	if health.Status == larder.HealthStatusHealthy {
//	    fmt.Println("Both tiers operational")
//	}
//
// # Configuration
//
// Load configuration from a JSON file with environment overrides:
//
//	store, err := larder.NewFromFile("config.json")
//
// Or use the default configuration:
//
//	cfg := larder.Config()
//	// Customize cfg...
//	store, err := larder.NewFromConfig(cfg)
//
// For testing, use the test configuration:
//
//	cfg := larder.TestConfig()
//
// # Thread Safety
//
// All store operations are thread-safe and can be used concurrently from multiple goroutines.
package larder
