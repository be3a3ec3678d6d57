package authz

import (
	"testing"

	"yatube/internal/models"
)

var (
	alice = &models.User{ID: 1, Username: "alice"}
	bob   = &models.User{ID: 2, Username: "bob"}
)

func TestCanCreatePost(t *testing.T) {
	if d := CanCreatePost(nil); d != DenyAnonymous {
		t.Errorf("anonymous create = %v, want DenyAnonymous", d)
	}
	if d := CanCreatePost(alice); d != Allow {
		t.Errorf("authenticated create = %v, want Allow", d)
	}
}

func TestCanModifyPost(t *testing.T) {
	post := &models.Post{ID: 7, AuthorID: alice.ID}

	if d := CanModifyPost(nil, post); d != DenyAnonymous {
		t.Errorf("anonymous modify = %v, want DenyAnonymous", d)
	}
	if d := CanModifyPost(bob, post); d != DenyNotOwner {
		t.Errorf("non-author modify = %v, want DenyNotOwner", d)
	}
	if d := CanModifyPost(alice, post); d != Allow {
		t.Errorf("author modify = %v, want Allow", d)
	}
}

func TestCanFollow(t *testing.T) {
	if d := CanFollow(nil, bob); d != DenyAnonymous {
		t.Errorf("anonymous follow = %v, want DenyAnonymous", d)
	}
	if d := CanFollow(alice, alice); d != DenySelfFollow {
		t.Errorf("self follow = %v, want DenySelfFollow", d)
	}
	if d := CanFollow(alice, bob); d != Allow {
		t.Errorf("follow = %v, want Allow", d)
	}
}

func TestCanEditProfile(t *testing.T) {
	if d := CanEditProfile(nil, alice); d != DenyAnonymous {
		t.Errorf("anonymous profile edit = %v, want DenyAnonymous", d)
	}
	if d := CanEditProfile(bob, alice); d != DenyNotOwner {
		t.Errorf("foreign profile edit = %v, want DenyNotOwner", d)
	}
	if d := CanEditProfile(alice, alice); d != Allow {
		t.Errorf("own profile edit = %v, want Allow", d)
	}
}

func TestCommentAndGroupNeedAuthOnly(t *testing.T) {
	if d := CanComment(nil); d != DenyAnonymous {
		t.Errorf("anonymous comment = %v, want DenyAnonymous", d)
	}
	if d := CanComment(bob); d != Allow {
		t.Errorf("comment = %v, want Allow", d)
	}
	if d := CanCreateGroup(nil); d != DenyAnonymous {
		t.Errorf("anonymous group create = %v, want DenyAnonymous", d)
	}
	if d := CanCreateGroup(bob); d != Allow {
		t.Errorf("group create = %v, want Allow", d)
	}
}
