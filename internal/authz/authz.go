package authz

import (
	"yatube/internal/models"
)

// Decision is the outcome of an authorization check. Handlers map denials to
// redirects (soft deny) rather than error pages.
type Decision int

const (
	Allow Decision = iota
	// DenyAnonymous: the action needs an authenticated actor
	DenyAnonymous
	// DenyNotOwner: the actor is authenticated but does not own the target
	DenyNotOwner
	// DenySelfFollow: a user tried to follow themselves
	DenySelfFollow
)

func (d Decision) Allowed() bool { return d == Allow }

// CanCreatePost: any authenticated user may post; the actor becomes the
// author, never a client-supplied value.
func CanCreatePost(actor *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	return Allow
}

// CanModifyPost gates both edit and delete: author only.
func CanModifyPost(actor *models.User, post *models.Post) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	if actor.ID != post.AuthorID {
		return DenyNotOwner
	}
	return Allow
}

// CanComment: any authenticated user may comment on any post.
func CanComment(actor *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	return Allow
}

// CanCreateGroup: any authenticated user may create a group; groups are
// ownerless.
func CanCreateGroup(actor *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	return Allow
}

// CanFollow refuses self-follows at the action layer. The database check
// constraint is the second line of defense if this is ever bypassed.
func CanFollow(actor *models.User, author *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	if actor.ID == author.ID {
		return DenySelfFollow
	}
	return Allow
}

// CanUnfollow only needs an authenticated actor; whether the relationship
// exists is decided at the storage layer.
func CanUnfollow(actor *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	return Allow
}

// CanEditProfile: a profile is editable only by its owner.
func CanEditProfile(actor *models.User, profile *models.User) Decision {
	if actor == nil {
		return DenyAnonymous
	}
	if actor.ID != profile.ID {
		return DenyNotOwner
	}
	return Allow
}
