package rsa

import "container/heap"

// Route is an ordered sequence of vertices from source to destination plus
// its summed edge cost. Ordered rather than a set, since link-key
// enumeration along a path requires knowing which vertex precedes which.
type Route struct {
	Vertices []Vertex
	Cost     Cost
}

// RoutingStrategy computes a Route between source and destination, or
// reports that none exists.
type RoutingStrategy interface {
	Compute(source, destination Vertex) (Route, bool)
}

// BreadthFirstSearch finds an unweighted shortest path via predecessor
// back-trace. Reported Cost is always zero.
type BreadthFirstSearch struct {
	graph *Graph
}

// NewBreadthFirstSearch binds a BFS strategy to graph.
func NewBreadthFirstSearch(graph *Graph) *BreadthFirstSearch {
	return &BreadthFirstSearch{graph: graph}
}

// Compute implements RoutingStrategy.
func (b *BreadthFirstSearch) Compute(source, destination Vertex) (Route, bool) {
	visited := make(map[Vertex]bool)
	predecessor := make(map[Vertex]Vertex)
	hasPredecessor := make(map[Vertex]bool)

	queue := []Vertex{source}
	visited[source] = true

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == destination {
			break
		}
		for _, e := range b.graph.At(v) {
			if visited[e.Destination] {
				continue
			}
			visited[e.Destination] = true
			predecessor[e.Destination] = v
			hasPredecessor[e.Destination] = true
			queue = append(queue, e.Destination)
		}
	}

	return backtrace(source, destination, predecessor, hasPredecessor)
}

// DepthFirstSearch finds any path to destination, not necessarily minimal.
// Reported Cost is always zero.
type DepthFirstSearch struct {
	graph *Graph
}

// NewDepthFirstSearch binds a DFS strategy to graph.
func NewDepthFirstSearch(graph *Graph) *DepthFirstSearch {
	return &DepthFirstSearch{graph: graph}
}

// Compute implements RoutingStrategy.
func (d *DepthFirstSearch) Compute(source, destination Vertex) (Route, bool) {
	visited := make(map[Vertex]bool)
	predecessor := make(map[Vertex]Vertex)
	hasPredecessor := make(map[Vertex]bool)

	stack := []Vertex{source}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[v] {
			continue
		}
		visited[v] = true
		if v == destination {
			break
		}
		for _, e := range d.graph.At(v) {
			if visited[e.Destination] {
				continue
			}
			predecessor[e.Destination] = v
			hasPredecessor[e.Destination] = true
			stack = append(stack, e.Destination)
		}
	}

	return backtrace(source, destination, predecessor, hasPredecessor)
}

func backtrace(source, destination Vertex, predecessor map[Vertex]Vertex, has map[Vertex]bool) (Route, bool) {
	if destination != source && !has[destination] {
		return Route{}, false
	}
	var reversed []Vertex
	v := destination
	for {
		reversed = append(reversed, v)
		if v == source {
			break
		}
		if !has[v] {
			return Route{}, false
		}
		v = predecessor[v]
	}
	vertices := make([]Vertex, len(reversed))
	for i, v := range reversed {
		vertices[len(reversed)-1-i] = v
	}
	return Route{Vertices: vertices, Cost: CostMin()}, true
}

// dijkstraItem is one entry of the Dijkstra priority queue: (cost, hops,
// vertex), ordered by cost then hop count so that, among equal-cost paths,
// the fewest-hop path is preferred.
type dijkstraItem struct {
	cost   Cost
	hops   int
	vertex Vertex
}

type dijkstraQueue []dijkstraItem

func (q dijkstraQueue) Len() int { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].hops < q[j].hops
}
func (q dijkstraQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *dijkstraQueue) Push(x any)        { *q = append(*q, x.(dijkstraItem)) }
func (q *dijkstraQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Dijkstra computes the minimum-cost path, with fewer hops preferred among
// equal-cost candidates.
type Dijkstra struct {
	graph *Graph
}

// NewDijkstra binds a Dijkstra strategy to graph.
func NewDijkstra(graph *Graph) *Dijkstra {
	return &Dijkstra{graph: graph}
}

// Compute implements RoutingStrategy.
func (d *Dijkstra) Compute(source, destination Vertex) (Route, bool) {
	costs := make(map[Vertex]Cost)
	hops := make(map[Vertex]int)
	predecessor := make(map[Vertex]Vertex)
	hasPredecessor := make(map[Vertex]bool)
	visited := make(map[Vertex]bool)

	costs[source] = CostMin()
	hops[source] = 0

	pq := &dijkstraQueue{{cost: CostMin(), hops: 0, vertex: source}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(dijkstraItem)
		v := item.vertex
		if visited[v] {
			continue
		}
		visited[v] = true
		if v == destination {
			break
		}

		for _, e := range d.graph.At(v) {
			next := e.Destination
			if visited[next] {
				continue
			}
			candidateCost := costs[v] + e.Cost
			candidateHops := hops[v] + 1
			existing, known := costs[next]
			better := !known || candidateCost < existing ||
				(candidateCost == existing && candidateHops < hops[next])
			if better {
				costs[next] = candidateCost
				hops[next] = candidateHops
				predecessor[next] = v
				hasPredecessor[next] = true
				heap.Push(pq, dijkstraItem{cost: candidateCost, hops: candidateHops, vertex: next})
			}
		}
	}

	if !visited[destination] {
		return Route{}, false
	}
	route, ok := backtrace(source, destination, predecessor, hasPredecessor)
	if !ok {
		return Route{}, false
	}
	route.Cost = costs[destination]
	return route, true
}

// RandomRouting ignores its inputs, draws source and destination from the
// "routing" uniform stream (rejecting equal pairs), and delegates to a
// statically held Dijkstra instance to compute a deterministic path between
// them.
type RandomRouting struct {
	graph    *Graph
	rand     *RandomNumberService
	dijkstra *Dijkstra
}

// NewRandomRouting binds a RandomRouting strategy to graph, drawing from
// rand's "routing" stream.
func NewRandomRouting(graph *Graph, rand *RandomNumberService) *RandomRouting {
	return &RandomRouting{graph: graph, rand: rand, dijkstra: NewDijkstra(graph)}
}

// Compute implements RoutingStrategy. source and destination are ignored.
func (r *RandomRouting) Compute(Vertex, Vertex) (Route, bool) {
	n := r.graph.Size()
	if n < 2 {
		return Route{}, false
	}
	source := Vertex(int(r.rand.Next("routing")) % n)
	destination := Vertex(int(r.rand.Next("routing")) % n)
	for destination == source {
		destination = Vertex(int(r.rand.Next("routing")) % n)
	}
	return r.dijkstra.Compute(source, destination)
}

// KShortestPath yields up to k paths in ascending order of cumulative cost
// via best-first search over partial paths. The algorithm is
// loop-permitting: a partial path may revisit a vertex rather than being
// pruned.
type KShortestPath struct {
	graph *Graph
}

// NewKShortestPath binds a KShortestPath strategy to graph.
func NewKShortestPath(graph *Graph) *KShortestPath {
	return &KShortestPath{graph: graph}
}

type partialPath struct {
	vertices []Vertex
	cost     Cost
}

type partialPathQueue []partialPath

func (q partialPathQueue) Len() int            { return len(q) }
func (q partialPathQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q partialPathQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *partialPathQueue) Push(x any)         { *q = append(*q, x.(partialPath)) }
func (q *partialPathQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Compute returns up to k Routes from source to destination, in ascending
// order of cumulative cost.
func (k *KShortestPath) Compute(source, destination Vertex, kPaths int) []Route {
	if kPaths <= 0 {
		return nil
	}

	pq := &partialPathQueue{{vertices: []Vertex{source}, cost: CostMin()}}
	heap.Init(pq)

	var results []Route
	// Bound expansion to avoid unbounded search on pathological graphs
	// (loop-permitting paths can otherwise grow forever).
	maxExpansions := 100000
	for pq.Len() > 0 && len(results) < kPaths && maxExpansions > 0 {
		maxExpansions--
		path := heap.Pop(pq).(partialPath)
		last := path.vertices[len(path.vertices)-1]

		if last == destination {
			vertices := make([]Vertex, len(path.vertices))
			copy(vertices, path.vertices)
			results = append(results, Route{Vertices: vertices, Cost: path.cost})
			continue
		}

		for _, e := range k.graph.At(last) {
			nextVertices := make([]Vertex, len(path.vertices)+1)
			copy(nextVertices, path.vertices)
			nextVertices[len(path.vertices)] = e.Destination
			heap.Push(pq, partialPath{vertices: nextVertices, cost: path.cost + e.Cost})
		}
	}

	return results
}

// Router holds the current routing strategy and memoizes Compute results
// keyed on the Cantor-paired (source, destination). The cache never evicts.
type Router struct {
	strategy RoutingStrategy
	cache    map[uint64]Route
}

// NewRouter creates a Router with no strategy set.
func NewRouter() *Router {
	return &Router{cache: make(map[uint64]Route)}
}

// SetStrategy installs the routing strategy used by Compute on a cache
// miss.
func (r *Router) SetStrategy(strategy RoutingStrategy) {
	r.strategy = strategy
}

// Compute returns the cached Route for (source, destination) if present,
// otherwise computes it via the current strategy and caches the result.
// Cache hits bypass the strategy entirely. The key is the (source,
// destination) arguments, not the pair a strategy resolves them to: for
// RandomRouting, called with (NullVertex, NullVertex), the first route it
// returns is cached and handed back for every later call with that pair.
func (r *Router) Compute(source, destination Vertex) (Route, bool) {
	key := cantorPair(source, destination)
	if route, ok := r.cache[key]; ok {
		return route, true
	}
	route, ok := r.strategy.Compute(source, destination)
	if !ok {
		return Route{}, false
	}
	r.cache[key] = route
	return route, true
}
