package doctree

import (
	"encoding/json"
	"testing"
)

func TestRole_RankOrdering(t *testing.T) {
	// Ranks must follow the documented outer-to-inner order exactly.
	want := map[Role]int{
		DocumentTitle: 0,
		Addressee:     1,
		Heading1:      2,
		Heading2:      3,
		Heading3:      4,
		Heading4:      5,
		ListItem:      6,
		BodyParagraph: 7,
		Closing:       8,
		Signature:     9,
		Attachment:    10,
		Separator:     11,
		BlankLine:     12,
	}
	for role, rank := range want {
		if got := role.Rank(); got != rank {
			t.Errorf("%s: expected rank %d, got %d", role, rank, got)
		}
	}
}

func TestRole_RanksStrictlyIncreasing(t *testing.T) {
	roles := Roles()
	for i := 1; i < len(roles); i++ {
		if roles[i].Rank() <= roles[i-1].Rank() {
			t.Errorf("expected rank of %s (%d) above %s (%d)",
				roles[i], roles[i].Rank(), roles[i-1], roles[i-1].Rank())
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	for _, r := range []Role{roleRoot, Role(13), Role(99)} {
		if r.Valid() {
			t.Errorf("expected role %d to be invalid", int(r))
		}
	}
}

func TestRole_RootRanksBelowEverything(t *testing.T) {
	for _, r := range Roles() {
		if roleRoot.Rank() >= r.Rank() {
			t.Errorf("expected root rank %d below %s rank %d", roleRoot.Rank(), r, r.Rank())
		}
	}
}

func TestRoleFromLabel(t *testing.T) {
	for _, r := range Roles() {
		got, ok := RoleFromLabel(r.Label())
		if !ok {
			t.Errorf("expected label %q to resolve", r.Label())
			continue
		}
		if got != r {
			t.Errorf("label %q: expected %s, got %s", r.Label(), r, got)
		}
	}
	if _, ok := RoleFromLabel("不存在的类型"); ok {
		t.Error("expected unknown label to fail")
	}
}

func TestRoleFromTag(t *testing.T) {
	role, ok := RoleFromTag("heading2")
	if !ok || role != Heading2 {
		t.Errorf("expected heading2, got %v (ok=%v)", role, ok)
	}
	if _, ok := RoleFromTag("chapter"); ok {
		t.Error("expected unknown tag to fail")
	}
}

func TestRole_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Signature)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"signature"` {
		t.Errorf("expected %q, got %s", `"signature"`, data)
	}

	var r Role
	if err := json.Unmarshal([]byte(`"list_item"`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r != ListItem {
		t.Errorf("expected ListItem, got %s", r)
	}

	if err := json.Unmarshal([]byte(`"chapter"`), &r); err == nil {
		t.Error("expected error for unknown tag")
	}
}
