package domain

import "context"

// Service exposes the category catalog. Find never fails on a miss: absent
// categories resolve to nil and consumers fall back to default pricing.
type Service interface {
	List(ctx context.Context) ([]ActivityCategory, error)
	Find(ctx context.Context, name string) (*ActivityCategory, error)
}
