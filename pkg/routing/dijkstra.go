package routing

import (
	"container/heap"

	"crowdshield/pkg/datastructure"
	"crowdshield/util"
)

// shortestPath runs Dijkstra between two node ids. Returns the node sequence,
// total distance in km, and whether a path was found. Ties are broken by heap
// visitation order, which is deterministic for a given graph.
func shortestPath(g datastructure.Graph, from, to int32) ([]int32, float64, bool) {
	dist := make(map[int32]float64)
	cameFrom := make(map[int32]int32)
	visited := make(map[int32]bool)

	pq := &priorityQueue[int32]{}
	heap.Init(pq)
	heap.Push(pq, &priorityQueueNode[int32]{rank: 0, item: from})
	dist[from] = 0

	found := false
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*priorityQueueNode[int32])
		if visited[current.item] {
			continue
		}
		visited[current.item] = true

		if current.item == to {
			found = true
			break
		}

		for _, e := range g.Neighbors(current.item) {
			if visited[e.To] {
				continue
			}
			newDist := dist[current.item] + e.WeightKm
			if old, ok := dist[e.To]; !ok || newDist < old {
				dist[e.To] = newDist
				cameFrom[e.To] = current.item
				heap.Push(pq, &priorityQueueNode[int32]{rank: newDist, item: e.To})
			}
		}
	}

	if !found {
		return nil, 0, false
	}

	path := []int32{to}
	for at := to; at != from; {
		prev, ok := cameFrom[at]
		if !ok {
			return nil, 0, false
		}
		path = append(path, prev)
		at = prev
	}
	path = util.ReverseG(path)

	return path, dist[to], true
}
