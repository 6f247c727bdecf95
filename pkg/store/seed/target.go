// Package seed inserts fixture data sets into the Graveboards database.
// Seeders declare dependencies on one another (a request needs its user,
// queue and beatmapset) and run in topologically resolved layers.
package seed

import (
	"fmt"
	"strings"
)

// Target is a CLI-facing seed selector.
type Target string

const (
	TargetAll         Target = "all"
	TargetUsers       Target = "users"
	TargetQueues      Target = "queues"
	TargetBeatmapsets Target = "beatmapsets"
	TargetRequests    Target = "requests"
)

// Targets lists every accepted CLI selector.
func Targets() []Target {
	return []Target{TargetAll, TargetUsers, TargetQueues, TargetBeatmapsets, TargetRequests}
}

// ParseTarget validates a CLI selector.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown seed target %q (valid: all, users, queues, beatmapsets, requests)", s)
}

// seederTarget identifies one concrete seeder.
type seederTarget string

const (
	seederUser       seederTarget = "user"
	seederQueue      seederTarget = "queue"
	seederBeatmapset seederTarget = "beatmapset"
	seederRequest    seederTarget = "request"
)

// targetSet expands a CLI selector into the seeders it names.
func targetSet(t Target) map[seederTarget]struct{} {
	switch t {
	case TargetUsers:
		return set(seederUser)
	case TargetQueues:
		return set(seederQueue)
	case TargetBeatmapsets:
		return set(seederBeatmapset)
	case TargetRequests:
		return set(seederRequest)
	default:
		return set(seederUser, seederQueue, seederBeatmapset, seederRequest)
	}
}

func set(targets ...seederTarget) map[seederTarget]struct{} {
	m := make(map[seederTarget]struct{}, len(targets))
	for _, t := range targets {
		m[t] = struct{}{}
	}
	return m
}
