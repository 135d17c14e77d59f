package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/caawiye/applink/internal/models"
)

// LinkCache keeps hot link configurations off the store on the redirect
// path, keyed by link id.
type LinkCache struct {
	c *lru.Cache[string, *models.Link]
}

func New(size int) (*LinkCache, error) {
	c, err := lru.New[string, *models.Link](size)
	if err != nil {
		return nil, err
	}
	return &LinkCache{c: c}, nil
}

func (lc *LinkCache) Get(id string) (*models.Link, bool) {
	return lc.c.Get(id)
}

func (lc *LinkCache) Set(id string, link *models.Link) {
	lc.c.Add(id, link)
}

func (lc *LinkCache) Invalidate(id string) {
	lc.c.Remove(id)
}
