package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const filterCacheSizeBytes = 2 * 1024 * 1024

// Index loads the static exercise dataset once and serves point lookups,
// facet listing and filtered views. The underlying list never changes, so
// filter results are cached indefinitely.
type Index struct {
	exercises []Exercise
	byID      map[string]Exercise
	facets    Facets

	filterCache *freecache.Cache
}

func NewIndex(datasetReader io.Reader) (*Index, error) {
	var exercises []Exercise
	if err := json.NewDecoder(datasetReader).Decode(&exercises); err != nil {
		return nil, fmt.Errorf("decode exercise dataset: %w", err)
	}

	index := &Index{
		exercises:   exercises,
		byID:        make(map[string]Exercise, len(exercises)),
		filterCache: freecache.NewCache(filterCacheSizeBytes),
	}

	bodyParts := make(map[string]struct{})
	equipments := make(map[string]struct{})
	targets := make(map[string]struct{})

	for i, ex := range exercises {
		// image files are served locally, named after the trailing gif url segment
		if imageID := imageIDFromURL(ex.GifURL); imageID != "" {
			index.exercises[i].LocalGif = "/gifs/" + imageID + ".gif"
			index.exercises[i].LocalPng = "/gifs/" + imageID + ".png"
		}

		index.byID[ex.ID] = index.exercises[i]
		bodyParts[ex.BodyPart] = struct{}{}
		equipments[ex.Equipment] = struct{}{}
		targets[ex.Target] = struct{}{}
	}

	index.facets = Facets{
		BodyParts:  sortedKeys(bodyParts),
		Equipments: sortedKeys(equipments),
		Targets:    sortedKeys(targets),
	}

	log.Debugf("exercise catalog loaded, %d exercises", len(exercises))

	return index, nil
}

// All returns the full catalog in load order.
func (i *Index) All() []Exercise {
	return i.exercises
}

// Get returns the exercise with the given id.
func (i *Index) Get(id string) (Exercise, bool) {
	ex, ok := i.byID[id]
	return ex, ok
}

func (i *Index) Facets() Facets {
	return i.facets
}

// Filter returns the exercises matching all given params.
func (i *Index) Filter(params FilterParams) []Exercise {
	cacheKey := []byte(strings.Join([]string{
		params.Search, params.BodyPart, params.Equipment, params.Target,
	}, "||"))

	if cached, err := i.filterCache.Get(cacheKey); err == nil {
		var exercises []Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises
		}
	}

	searchTerm := strings.ToLower(params.Search)
	filtered := make([]Exercise, 0)
	for _, ex := range i.exercises {
		if params.BodyPart != "" && ex.BodyPart != params.BodyPart {
			continue
		}
		if params.Equipment != "" && ex.Equipment != params.Equipment {
			continue
		}
		if params.Target != "" && ex.Target != params.Target {
			continue
		}
		if searchTerm != "" && !strings.Contains(strings.ToLower(ex.Name), searchTerm) {
			continue
		}
		filtered = append(filtered, ex)
	}

	if filteredJson, err := json.Marshal(filtered); err == nil {
		// the catalog is immutable, cache entries never expire
		if err := i.filterCache.Set(cacheKey, filteredJson, 0); err != nil {
			log.Tracef("filter cache set: %s", err)
		}
	}

	return filtered
}

func imageIDFromURL(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
