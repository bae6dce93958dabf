package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

type target struct {
	address  string
	protocol string
}

type result struct {
	endpoint string
	status   string
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	outcomes  map[string]int64
	latencies []time.Duration
}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "mcstatus API base URL")
	workers := flag.Int("workers", 20, "concurrent clients")
	duration := flag.Duration("duration", 10*time.Second, "length of each phase")
	servers := flag.String("servers", "mc.hypixel.net:java,play.cubecraft.net:bedrock,localhost:auto,unreachable.invalid:auto",
		"comma separated address:protocol pairs")
	flag.Parse()

	targets := parseTargets(*servers)
	if len(targets) == 0 {
		fmt.Println("no servers to query")
		return
	}

	fmt.Println("=== mcstatus Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Servers: %d\n\n", *workers, *duration, len(targets))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: every worker asks for a different server, mostly cache misses.
	fmt.Println("\n--- Phase 1: Spread lookups (GET /status) ---")
	runPhase(*workers, *duration, func(rng *rand.Rand) result {
		t := targets[rng.IntN(len(targets))]
		return doGetStatus(*baseURL, t, rng.Float64() < 0.2)
	})

	// Phase 2: one hot server, should be served from the response cache.
	fmt.Println("\n--- Phase 2: Hot server (GET /status) ---")
	hot := targets[0]
	runPhase(*workers, *duration, func(rng *rand.Rand) result {
		return doGetStatus(*baseURL, hot, false)
	})

	// Phase 3: lookups mixed with health checks.
	fmt.Println("\n--- Phase 3: Mixed load (90% /status, 10% /health) ---")
	runPhase(*workers, *duration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.10 {
			return doGetHealth(*baseURL)
		}
		return doGetStatus(*baseURL, targets[rng.IntN(len(targets))], false)
	})
}

func parseTargets(list string) []target {
	var targets []target
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		i := strings.LastIndex(item, ":")
		if i < 0 {
			targets = append(targets, target{address: item, protocol: "auto"})
			continue
		}
		targets = append(targets, target{address: item[:i], protocol: item[i+1:]})
	}
	return targets
}

func runPhase(workers int, duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed>>1))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{outcomes: make(map[string]int64)}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			if r.status != "" {
				s.outcomes[r.status]++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-14s %8s %6s %10s %10s %10s %10s  %s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99", "Outcomes")
	fmt.Println("  " + strings.Repeat("-", 100))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-14s %8d %6d %10s %10s %10s %10s  %s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)),
			fmtOutcomes(s.outcomes))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 100))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, rps)
}

func doGetStatus(baseURL string, t target, identicon bool) result {
	q := url.Values{}
	q.Set("address", t.address)
	q.Set("protocol", t.protocol)
	if identicon {
		q.Set("identicon", "true")
	}

	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/status?" + q.Encode())
	lat := time.Since(start)
	if err != nil {
		return result{"GET /status", "", lat, true}
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&body) != nil {
		io.Copy(io.Discard, resp.Body)
		return result{"GET /status", "", lat, true}
	}
	return result{"GET /status", body.Status, lat, false}
}

func doGetHealth(baseURL string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", "", lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", "", lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func fmtOutcomes(outcomes map[string]int64) string {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, outcomes[k]))
	}
	return strings.Join(parts, " ")
}
