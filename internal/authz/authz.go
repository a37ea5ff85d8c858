// Package authz is the single authorization decision point for mutating
// operations. Read operations are public; every update or delete across
// boards, pins, comments, and profiles consults CanMutate rather than
// re-implementing an ownership check per entity type.
package authz

// Owned is implemented by every entity that carries an owning user
// (the author, for comments).
type Owned interface {
	OwnedBy() uint
}

// CanMutate reports whether the actor may update or delete the entity.
// Actor 0 means unauthenticated and can never mutate.
func CanMutate(actorID uint, entity Owned) bool {
	if actorID == 0 || entity == nil {
		return false
	}
	return entity.OwnedBy() == actorID
}
