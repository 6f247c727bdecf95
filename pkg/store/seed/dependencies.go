package seed

import (
	"fmt"
	"sort"
)

// dependencies records which seeders must run before which. Selecting a
// seeder implicitly selects everything it depends on.
var dependencies = map[seederTarget]map[seederTarget]struct{}{
	seederUser:       {},
	seederQueue:      {seederUser: {}},
	seederBeatmapset: {seederUser: {}},
	seederRequest:    {seederUser: {}, seederQueue: {}, seederBeatmapset: {}},
}

// resolve expands the requested seeders with their transitive dependencies
// and partitions the result into topological layers: every seeder in layer
// n depends only on seeders in layers < n. Layers are sorted for stable
// execution order.
func resolve(requested map[seederTarget]struct{}) ([][]seederTarget, error) {
	resolved := make(map[seederTarget]struct{})

	var visit func(t seederTarget)
	visit = func(t seederTarget) {
		if _, done := resolved[t]; done {
			return
		}
		for dep := range dependencies[t] {
			visit(dep)
		}
		resolved[t] = struct{}{}
	}

	for t := range requested {
		visit(t)
	}

	return topologicalLayers(resolved)
}

func topologicalLayers(targets map[seederTarget]struct{}) ([][]seederTarget, error) {
	graph := make(map[seederTarget]map[seederTarget]struct{}, len(targets))
	for t := range targets {
		deps := make(map[seederTarget]struct{})
		for dep := range dependencies[t] {
			if _, in := targets[dep]; in {
				deps[dep] = struct{}{}
			}
		}
		graph[t] = deps
	}

	var layers [][]seederTarget
	for len(graph) > 0 {
		var ready []seederTarget
		for t, deps := range graph {
			if len(deps) == 0 {
				ready = append(ready, t)
			}
		}

		if len(ready) == 0 {
			return nil, fmt.Errorf("circular dependency among seed targets")
		}

		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		layers = append(layers, ready)

		for _, t := range ready {
			delete(graph, t)
		}
		for _, deps := range graph {
			for _, t := range ready {
				delete(deps, t)
			}
		}
	}

	return layers, nil
}
