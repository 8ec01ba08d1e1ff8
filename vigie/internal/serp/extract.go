// CLAUDE:SUMMARY Tolerant extraction of (rank, url) results and feature labels from opaque provider SERP payloads.
// Package serp turns a raw provider SERP payload into a normalized result
// list and feature set.
//
// Provider payloads are untyped JSON and arrive in several shapes. Extract
// never fails: a payload matching no known shape degrades to an empty
// extraction with ParseWarning set, so one bad snapshot can never abort an
// aggregate computed over many. Every other package goes through Extract —
// nothing re-implements result or feature parsing on its own.
package serp

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Result is one organic result slot.
type Result struct {
	Rank int    `json:"rank"`
	URL  string `json:"url"`
}

// Extraction is the normalized view of one observation payload.
type Extraction struct {
	Results      []Result `json:"results"`
	Features     []string `json:"features"`
	ParseWarning bool     `json:"parse_warning"`
}

// TransitionDelimiter separates the "from" and "to" halves of a feature
// transition key. Label normalization strips '|' and ',' so the delimiter
// can never occur inside a label or a joined label list.
const TransitionDelimiter = "||"

// featureKeys maps provider payload keys to canonical feature labels.
// A key counts as present when its value is a non-empty object or array,
// or a true boolean.
var featureKeys = map[string]string{
	"featured_snippet":  "featured_snippet",
	"answer_box":        "featured_snippet",
	"people_also_ask":   "people_also_ask",
	"related_questions": "people_also_ask",
	"knowledge_graph":   "knowledge_graph",
	"infobox":           "knowledge_graph",
	"top_stories":       "top_stories",
	"news_results":      "top_stories",
	"local_results":     "local_pack",
	"local_pack":        "local_pack",
	"inline_videos":     "videos",
	"videos":            "videos",
	"inline_images":     "images",
	"images":            "images",
	"shopping_results":  "shopping",
	"ads":               "ads",
	"ai_overview":       "ai_overview",
	"discussions":       "discussions",
	"faq":               "faq",
}

// Extract parses a raw provider payload. It never returns an error and never
// panics: unknown or malformed payloads yield an empty extraction with
// ParseWarning set.
func Extract(raw []byte) Extraction {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return Extraction{Results: []Result{}, Features: []string{}, ParseWarning: true}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Extraction{Results: []Result{}, Features: []string{}, ParseWarning: true}
	}

	results, matched := extractResults(root)
	features := extractFeatures(root)

	return Extraction{
		Results:      results,
		Features:     features,
		ParseWarning: !matched,
	}
}

// extractResults tries the known provider shapes in order. matched reports
// whether any shape was recognized, even if it held zero usable entries.
func extractResults(root gjson.Result) (results []Result, matched bool) {
	// serpapi-style: organic_results[].{position, link}
	if arr := root.Get("organic_results"); arr.IsArray() {
		return collect(arr, "position", "link"), true
	}
	// brave-style: web.results[].url with implicit 1-based rank
	if arr := root.Get("web.results"); arr.IsArray() {
		return collectImplicit(arr, "url"), true
	}
	// generic: results[].{rank|position, url|link}
	if arr := root.Get("results"); arr.IsArray() {
		return collect(arr, "rank", "url"), true
	}
	return []Result{}, false
}

// collect reads explicit ranks. Duplicate URLs keep the lowest rank; entries
// with a missing URL or a rank below 1 are skipped.
func collect(arr gjson.Result, rankKey, urlKey string) []Result {
	best := map[string]int{}
	arr.ForEach(func(_, item gjson.Result) bool {
		u := firstString(item, urlKey, "link", "url")
		rank := firstInt(item, rankKey, "position", "rank")
		if u == "" || rank < 1 {
			return true
		}
		if prev, ok := best[u]; !ok || rank < prev {
			best[u] = rank
		}
		return true
	})
	return sorted(best)
}

// collectImplicit assigns ranks by array position (1-based) for providers
// that encode rank as order only.
func collectImplicit(arr gjson.Result, urlKey string) []Result {
	best := map[string]int{}
	rank := 0
	arr.ForEach(func(_, item gjson.Result) bool {
		u := firstString(item, urlKey, "link")
		if u == "" {
			return true
		}
		rank++
		if prev, ok := best[u]; !ok || rank < prev {
			best[u] = rank
		}
		return true
	})
	return sorted(best)
}

func sorted(best map[string]int) []Result {
	out := make([]Result, 0, len(best))
	for u, r := range best {
		out = append(out, Result{Rank: r, URL: u})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// extractFeatures merges canonical labels detected from known payload keys
// with any explicit features[] / serp_features[] string array. The returned
// set is deduplicated and sorted.
func extractFeatures(root gjson.Result) []string {
	set := map[string]bool{}

	for key, label := range featureKeys {
		v := root.Get(key)
		if !v.Exists() {
			continue
		}
		switch {
		case v.IsObject() && len(v.Map()) > 0:
			set[label] = true
		case v.IsArray() && len(v.Array()) > 0:
			set[label] = true
		case v.Type == gjson.True:
			set[label] = true
		}
	}

	for _, key := range []string{"features", "serp_features"} {
		if arr := root.Get(key); arr.IsArray() {
			arr.ForEach(func(_, item gjson.Result) bool {
				if label := NormalizeLabel(item.String()); label != "" {
					set[label] = true
				}
				return true
			})
		}
	}

	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// NormalizeLabel lowercases a feature label, collapses whitespace to
// underscores, and strips the characters reserved for transition keys.
func NormalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "_")
	s = strings.ReplaceAll(s, "|", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}

func firstString(item gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := item.Get(k); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func firstInt(item gjson.Result, keys ...string) int {
	for _, k := range keys {
		if v := item.Get(k); v.Exists() && v.Type == gjson.Number {
			return int(v.Int())
		}
	}
	return 0
}
