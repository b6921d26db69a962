package doctree

import (
	"encoding/json"
	"fmt"
)

// Role is the structural role assigned to one paragraph of an
// administrative document.
type Role int

const (
	DocumentTitle Role = iota
	Addressee
	Heading1
	Heading2
	Heading3
	Heading4
	ListItem
	BodyParagraph
	Closing
	Signature
	Attachment
	Separator
	BlankLine

	roleCount
)

// roleRoot is the synthetic role of the tree root. It is not a valid
// classification result.
const roleRoot Role = -1

// RootRank is below every enumerated rank, so the first real node always
// nests under the root.
const RootRank = -1

// rankTable maps Role to nesting rank. Lower rank = outer level. Kept as an
// explicit array so tests can assert the ordering directly.
var rankTable = [roleCount]int{
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

var roleTags = [roleCount]string{
	DocumentTitle: "document_title",
	Addressee:     "addressee",
	Heading1:      "heading1",
	Heading2:      "heading2",
	Heading3:      "heading3",
	Heading4:      "heading4",
	ListItem:      "list_item",
	BodyParagraph: "body_paragraph",
	Closing:       "closing",
	Signature:     "signature",
	Attachment:    "attachment",
	Separator:     "separator",
	BlankLine:     "blank_line",
}

// roleLabels are the Chinese role names used by the classification oracle
// protocol and in analysis prompts.
var roleLabels = [roleCount]string{
	DocumentTitle: "发文标题",
	Addressee:     "主送机关",
	Heading1:      "一级标题",
	Heading2:      "二级标题",
	Heading3:      "三级标题",
	Heading4:      "四级标题",
	ListItem:      "列表项",
	BodyParagraph: "普通段落",
	Closing:       "结尾",
	Signature:     "落款",
	Attachment:    "附件",
	Separator:     "分隔符",
	BlankLine:     "空行",
}

// Roles lists every valid role in rank order.
func Roles() []Role {
	out := make([]Role, 0, roleCount)
	for r := Role(0); r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// Rank returns the nesting rank of r. The synthetic root role ranks below
// every real role.
func (r Role) Rank() int {
	if !r.Valid() {
		return RootRank
	}
	return rankTable[r]
}

// String returns the stable snake_case tag used in JSON output.
func (r Role) String() string {
	if !r.Valid() {
		return "root"
	}
	return roleTags[r]
}

// Label returns the Chinese role name.
func (r Role) Label() string {
	if !r.Valid() {
		return "根节点"
	}
	return roleLabels[r]
}

// RoleFromTag resolves a snake_case tag to a Role.
func RoleFromTag(tag string) (Role, bool) {
	for r := Role(0); r < roleCount; r++ {
		if roleTags[r] == tag {
			return r, true
		}
	}
	return roleRoot, false
}

// RoleFromLabel resolves a Chinese role name to a Role. Used to validate
// replies from the classification oracle.
func RoleFromLabel(label string) (Role, bool) {
	for r := Role(0); r < roleCount; r++ {
		if roleLabels[r] == label {
			return r, true
		}
	}
	return roleRoot, false
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag == "root" {
		*r = roleRoot
		return nil
	}
	role, ok := RoleFromTag(tag)
	if !ok {
		return fmt.Errorf("unknown role tag: %q", tag)
	}
	*r = role
	return nil
}
