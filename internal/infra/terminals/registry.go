// Package terminals holds the static ferry quay registry.
package terminals

import (
	"sort"

	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/paulmach/orb/geo"
)

// quays lists the ferry terminals the assistant knows about, keyed by their
// national stop register quay IDs.
var quays = []entity.Terminal{
	{ID: "NSR:Quay:8263", Name: "Moss fergekai", Location: entity.Coordinate{Lat: 59.4284, Lng: 10.6544}},
	{ID: "NSR:Quay:8264", Name: "Horten fergekai", Location: entity.Coordinate{Lat: 59.4196, Lng: 10.4960}},
	{ID: "NSR:Quay:7223", Name: "Mortavika ferjekai", Location: entity.Coordinate{Lat: 59.1086, Lng: 5.6602}},
	{ID: "NSR:Quay:7224", Name: "Arsvågen ferjekai", Location: entity.Coordinate{Lat: 59.1716, Lng: 5.5528}},
	{ID: "NSR:Quay:6632", Name: "Halhjem ferjekai", Location: entity.Coordinate{Lat: 60.1472, Lng: 5.4292}},
	{ID: "NSR:Quay:6633", Name: "Sandvikvåg ferjekai", Location: entity.Coordinate{Lat: 59.9948, Lng: 5.2343}},
	{ID: "NSR:Quay:11066", Name: "Bodø fergekai", Location: entity.Coordinate{Lat: 67.2823, Lng: 14.3900}},
	{ID: "NSR:Quay:11067", Name: "Moskenes fergekai", Location: entity.Coordinate{Lat: 67.8946, Lng: 13.0484}},
	{ID: "NSR:Quay:9751", Name: "Lavik ferjekai", Location: entity.Coordinate{Lat: 61.1075, Lng: 5.5317}},
	{ID: "NSR:Quay:9752", Name: "Oppedal ferjekai", Location: entity.Coordinate{Lat: 61.0821, Lng: 5.5350}},
	{ID: "NSR:Quay:7412", Name: "Molde ferjekai", Location: entity.Coordinate{Lat: 62.7372, Lng: 7.1607}},
	{ID: "NSR:Quay:7413", Name: "Vestnes ferjekai", Location: entity.Coordinate{Lat: 62.6268, Lng: 7.0891}},
}

type registry struct {
	byID map[string]entity.Terminal
	all  []entity.Terminal
}

// NewRegistry builds the quay registry from the embedded terminal list.
func NewRegistry() service.TerminalRegistry {
	byID := make(map[string]entity.Terminal, len(quays))
	all := make([]entity.Terminal, len(quays))
	copy(all, quays)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	for _, terminal := range quays {
		byID[terminal.ID] = terminal
	}

	return &registry{byID: byID, all: all}
}

func (r *registry) Get(id string) (entity.Terminal, bool) {
	terminal, ok := r.byID[id]

	return terminal, ok
}

// Nearest returns the terminal with the smallest great-circle distance to
// the coordinate. Ok is false only when the registry is empty.
func (r *registry) Nearest(coord entity.Coordinate) (entity.Terminal, bool) {
	if len(r.all) == 0 {
		return entity.Terminal{}, false
	}

	point := coord.Point()

	best := r.all[0]
	bestDistance := geo.DistanceHaversine(point, best.Location.Point())
	for _, candidate := range r.all[1:] {
		distance := geo.DistanceHaversine(point, candidate.Location.Point())
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	return best, true
}

func (r *registry) All() []entity.Terminal {
	all := make([]entity.Terminal, len(r.all))
	copy(all, r.all)

	return all
}
