// scripts/evaluate/main.go
//
// Offline evaluation harness for the temporal preprocessor, with an optional
// live benchmark of every configured LLM provider.
//
// Usage:
//   go run scripts/evaluate/main.go            # preprocessor corpus only
//   go run scripts/evaluate/main.go -live      # also benchmark the providers
//
// The corpus runs against a fixed reference time so results are reproducible.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"task-assignment-bot/config"
	"task-assignment-bot/pkg/llmprovider"
	"task-assignment-bot/pkg/temporal"
)

type corpusCase struct {
	Text           string
	WantConfidence float64
	WantDueDate    string
	WantDueTime    string
	WantReminder   string // reminder time, empty means don't check
	WantTimezone   string
}

func main() {
	live := flag.Bool("live", false, "also benchmark the configured LLM providers")
	tz := flag.String("tz", "America/Los_Angeles", "reference timezone for the corpus")
	flag.Parse()

	pre, err := temporal.NewPreprocessor(*tz)
	if err != nil {
		fmt.Printf("Invalid timezone %q: %v\n", *tz, err)
		os.Exit(1)
	}

	// Thursday 2025-07-10 14:30 — every relative phrase below resolves
	// deterministically from here.
	loc, _ := time.LoadLocation(*tz)
	ref := time.Date(2025, 7, 10, 14, 30, 0, 0, loc)

	corpus := []corpusCase{
		{
			Text:           "Remind Joel to check the generator tomorrow at 3pm",
			WantConfidence: 0.7,
			WantDueDate:    "2025-07-11",
			WantDueTime:    "15:00",
		},
		{
			Text:           "Tell Bryan to submit the report by end of day",
			WantConfidence: 0.9,
			WantDueDate:    "2025-07-10",
			WantDueTime:    "23:59",
		},
		{
			Text:           "Ping Colin at the top of the hour",
			WantConfidence: 0.9,
			WantDueDate:    "2025-07-10",
			WantDueTime:    "15:00",
		},
		{
			Text:           "Remind Joel 30 minutes before the 4pm meeting",
			WantConfidence: 0.8,
			WantDueDate:    "2025-07-10",
			WantDueTime:    "16:00",
			WantReminder:   "15:30",
		},
		{
			Text:           "Have Joel call the vendor at 3pm CST tomorrow",
			WantConfidence: 0.7,
			WantDueDate:    "2025-07-11",
			WantDueTime:    "15:00",
			WantTimezone:   "CST",
		},
		{
			Text:           "Sort out the inventory this weekend",
			WantConfidence: 0.9,
			WantDueDate:    "2025-07-12",
			WantDueTime:    "09:00",
		},
		{
			Text:           "Review the pump maintenance checklist",
			WantConfidence: 0.0,
		},
	}

	passed := 0
	for i, c := range corpus {
		ext := pre.Preprocess(c.Text, ref)
		ok := ext.Confidence == c.WantConfidence &&
			ext.Data.DueDate == c.WantDueDate &&
			ext.Data.DueTime == c.WantDueTime &&
			(c.WantReminder == "" || ext.Data.ReminderTime == c.WantReminder) &&
			ext.Data.TimezoneContext == c.WantTimezone

		status := "PASS"
		if ok {
			passed++
		} else {
			status = "FAIL"
		}
		fmt.Printf("[%s] %2d. %q\n", status, i+1, c.Text)
		fmt.Printf("        confidence=%.1f due=%s %s reminder=%s %s tz=%q\n",
			ext.Confidence, ext.Data.DueDate, ext.Data.DueTime,
			ext.Data.ReminderDate, ext.Data.ReminderTime, ext.Data.TimezoneContext)
		if !ok {
			fmt.Printf("        want confidence=%.1f due=%s %s reminder=%s tz=%q\n",
				c.WantConfidence, c.WantDueDate, c.WantDueTime, c.WantReminder, c.WantTimezone)
		}
	}
	fmt.Printf("\nPreprocessor corpus: %d/%d passed\n", passed, len(corpus))

	if *live {
		if err := runProviderBenchmark(); err != nil {
			fmt.Printf("Provider benchmark failed: %v\n", err)
			os.Exit(1)
		}
	}

	if passed != len(corpus) {
		os.Exit(1)
	}
}

// providerCase is one live-benchmark prompt with the fields a correct parse
// must produce.
type providerCase struct {
	Prompt       string
	WantAssignee string
	WantDueDate  string
	WantDueTime  string
}

type parsedReply struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
	DueTime  string `json:"due_time"`
}

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// runProviderBenchmark sends the benchmark prompts to every configured
// provider individually, reporting per-provider latency and field accuracy.
func runProviderBenchmark() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	cases := []providerCase{
		{
			Prompt: "Task: check the generator\n" +
				"Pre-parsed due date: 2025-07-11\n" +
				"Pre-parsed due time: 15:00\n" +
				"Message: Remind Joel to check the generator tomorrow at 3pm\n" +
				"(Context: It is currently 14:30 on 2025-07-10 where Colin is located)",
			WantAssignee: "Joel",
			WantDueDate:  "2025-07-11",
			WantDueTime:  "15:00",
		},
		{
			Prompt: "Message: Have Bryan inspect the pumps at the north site on December 1st\n" +
				"(Context: It is currently 14:30 on 2025-07-10 where Colin is located)",
			WantAssignee: "Bryan",
			WantDueDate:  "2025-12-01",
		},
		{
			Prompt: "Message: Tell Colin to restock the supply room\n" +
				"(Context: It is currently 14:30 on 2025-07-10 where Joel is located)",
			WantAssignee: "Colin",
		},
	}

	fmt.Println("\nProvider benchmark:")
	for _, p := range providers {
		var totalLatency time.Duration
		correct, answered := 0, 0

		for _, c := range cases {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			start := time.Now()
			resp, genErr := p.GenerateContent(ctx, &llmprovider.Request{
				System:      "You are a task parser. Return only valid JSON.",
				Prompt:      c.Prompt,
				Temperature: 0.1,
				MaxTokens:   500,
			})
			latency := time.Since(start)
			cancel()
			if genErr != nil {
				fmt.Printf("  %-10s ERROR after %v: %v\n", p.Name(), latency.Round(time.Millisecond), genErr)
				continue
			}
			answered++
			totalLatency += latency

			if fieldsCorrect(resp.Text, c) {
				correct++
			}
		}

		if answered == 0 {
			fmt.Printf("  %-10s (%s): no successful responses\n", p.Name(), p.Model())
			continue
		}
		fmt.Printf("  %-10s (%s): %d/%d fields correct, avg latency %v\n",
			p.Name(), p.Model(), correct, len(cases), (totalLatency / time.Duration(answered)).Round(time.Millisecond))
	}
	return nil
}

// fieldsCorrect checks the provider's JSON reply against the expected fields,
// tolerating markdown code fences around the payload.
func fieldsCorrect(text string, c providerCase) bool {
	body := strings.TrimSpace(text)
	if m := fencedJSONRe.FindStringSubmatch(body); m != nil {
		body = m[1]
	}

	var reply parsedReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return false
	}
	if strings.TrimSpace(reply.Task) == "" {
		return false
	}
	if !strings.EqualFold(reply.Assignee, c.WantAssignee) {
		return false
	}
	if c.WantDueDate != "" && reply.DueDate != c.WantDueDate {
		return false
	}
	if c.WantDueTime != "" && reply.DueTime != c.WantDueTime {
		return false
	}
	return true
}
