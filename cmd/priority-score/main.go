package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/behavior"
	"github.com/mikey/inbox-priority/internal/config"
	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/factory"
	"github.com/mikey/inbox-priority/internal/logging"
	"github.com/mikey/inbox-priority/internal/vip"
)

var (
	// Scoring flags
	source           = flag.String("source", "email", "Message source (email, chat)")
	internalDomains  = flag.String("internal-domains", "", "Comma-separated list of internal domains")
	importantDomains = flag.String("important-domains", "", "Comma-separated list of important domains")
	vipContacts      = flag.String("vip", "", "Comma-separated VIP contacts as address:importance")

	// Input flags
	inputFile  = flag.String("file", "", "Input message file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Build the scorer
	scorer, err := factory.NewScorer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build scorer", zap.Error(err))
	}

	// Build an in-process registry seeded from the -vip flag
	registry, err := factory.NewRegistry(cfg, nil, logger)
	if err != nil {
		logger.Fatal("Failed to build VIP registry", zap.Error(err))
	}
	seedRegistry(registry, *vipContacts, logger)

	behaviorStore := behavior.NewStore(logger)

	// Read message from file or stdin
	var msgReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		msgReader = file
		logger.Info("Reading message from file", zap.String("file", *inputFile))
	} else {
		msgReader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	// Parse message
	parsed, err := mail.ReadMessage(bufio.NewReader(msgReader))
	if err != nil {
		logger.Fatal("Failed to parse message", zap.Error(err))
	}

	from := parsed.Header.Get("From")
	subject := parsed.Header.Get("Subject")

	bodyBytes, err := io.ReadAll(parsed.Body)
	if err != nil {
		logger.Fatal("Failed to read message body", zap.Error(err))
	}

	sender := core.Sender{Address: from}
	if addr, err := mail.ParseAddress(from); err == nil {
		sender = core.Sender{Address: addr.Address, DisplayName: addr.Name}
	}

	timestamp := time.Now()
	if date, err := parsed.Header.Date(); err == nil {
		timestamp = date
	}

	msg := core.Message{
		Source:    core.MessageSource(*source),
		Sender:    sender,
		Subject:   subject,
		Body:      string(bodyBytes),
		Timestamp: timestamp,
	}

	// Print message summary
	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("From: %s\n", from)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Source: %s\n", *source)
	fmt.Printf("Body length: %d bytes\n", len(msg.Body))
	fmt.Printf("\n")

	startTime := time.Now()
	result := scorer.Score(msg, core.Snapshot{VIP: registry, Behavior: behaviorStore})
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("=== Results ===\n")
	fmt.Printf("Priority score: %d\n", result.Score)
	fmt.Printf("Label: %s\n", core.TierForScore(result.Score))
	fmt.Printf("Confidence: %d\n", result.Confidence)
	fmt.Printf("Factors: sender=%d keywords=%d urgency=%d vip=%d engagement=%d\n",
		result.Factors.Sender, result.Factors.Keywords, result.Factors.Urgency,
		result.Factors.VIP, result.Factors.Engagement)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	fmt.Printf("Processing time: %v\n", duration)
}

// seedRegistry parses the -vip flag (address:importance pairs) into the registry
func seedRegistry(registry *vip.Registry, list string, logger *zap.Logger) {
	if list == "" {
		return
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		address := entry
		importance := 90
		if idx := strings.LastIndex(entry, ":"); idx > 0 {
			address = entry[:idx]
			if n, err := strconv.Atoi(entry[idx+1:]); err == nil {
				importance = n
			}
		}
		registry.Upsert(core.VIPContact{Address: address, Importance: importance})
	}
	logger.Info("Seeded VIP registry from flags", zap.Int("contacts", len(registry.List())))
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	if *internalDomains != "" {
		v.Set("scoring.internal_domains", splitTrimmed(*internalDomains))
	}
	if *importantDomains != "" {
		v.Set("scoring.important_domains", splitTrimmed(*importantDomains))
	}

	return config.NewFromViper(v)
}

func splitTrimmed(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
