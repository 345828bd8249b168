package main

import (
	"context"
	"encoding/json"
	"testing"
)

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name        string
		event       string
		want        bool
		concurrency int
	}{
		{"warmup without concurrency", `{"source":"warmup"}`, true, 0},
		{"warmup with concurrency", `{"source":"warmup","concurrency":3}`, true, 3},
		{"concurrency capped", `{"source":"warmup","concurrency":500}`, true, MaxWarmupConcurrency},
		{"negative concurrency", `{"source":"warmup","concurrency":-2}`, true, 0},
		{"other source", `{"source":"aws.events"}`, false, 0},
		{"api gateway event", `{"httpMethod":"GET","path":"/healthz"}`, false, 0},
		{"not json", `nope`, false, 0},
		{"array", `[]`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IsWarmupEvent(json.RawMessage(tt.event))
			if ok != tt.want {
				t.Fatalf("IsWarmupEvent ok = %v, want %v", ok, tt.want)
			}
			if ok && got.Concurrency != tt.concurrency {
				t.Errorf("concurrency = %d, want %d", got.Concurrency, tt.concurrency)
			}
		})
	}
}

// TestHandleWarmupNoFanOut verifies a zero-concurrency warmup reports only itself.
func TestHandleWarmupNoFanOut(t *testing.T) {
	out, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := out.(map[string]interface{})
	body := resp["body"].(WarmupResponse)
	if body.InstancesWarmed != 1 || body.Status != "warm" {
		t.Errorf("body = %+v, want 1 warm instance", body)
	}
}
