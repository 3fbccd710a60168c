package model

import "strconv"

// PostRecord is one extracted forum post merged with its author metadata.
//
// Every field is always emitted, defaulting to the empty string (counts to
// zero), so the output stays column-stable across records regardless of
// which optional profile fields the source markup carried.
type PostRecord struct {
	// ForumID is the topic identifier the post belongs to.
	ForumID string

	// PostID is the post identifier from the post container's id
	// attribute with the "p" prefix stripped.
	PostID string

	// Title is the post heading with a single leading "Re: " removed.
	Title string

	// Username is the author's display name.
	Username string

	// UserID is the numeric profile identifier from the author's
	// profile link ("u" query parameter).
	UserID string

	// Rank is the author's forum rank text.
	Rank string

	// PostCount is the author's total post count as displayed.
	PostCount string

	// RegistrationDate is the author's registration date text.
	RegistrationDate string

	// Profession is the author's profession custom field, if set.
	Profession string

	// Location is the author's location custom field, if set.
	Location string

	// ThanksGiven is the author's thanks-given counter as displayed.
	ThanksGiven string

	// ThanksReceived is the author's thanks-received counter as displayed.
	ThanksReceived string

	// Datetime is the post timestamp normalized to
	// "2006-01-02 15:04:05" where the markup allowed it, otherwise the
	// best-effort raw text.
	Datetime string

	// Content is the post body with whitespace runs collapsed.
	Content string

	// ThanksUsers is the comma-joined list of users who thanked the
	// author for this post, in document order.
	ThanksUsers string

	// ThanksCount is the number of thankers. An explicit "celkem N"
	// total in the markup is authoritative; otherwise it is the number
	// of listed names.
	ThanksCount int
}

// PostColumns is the canonical output column order for post records.
// The order is part of the contract for downstream consumers; do not
// reorder without versioning the output.
var PostColumns = []string{
	"forum_id",
	"post_id",
	"title",
	"username",
	"user_id",
	"rank",
	"post_count",
	"registration_date",
	"profession",
	"location",
	"thanks_given",
	"thanks_received",
	"datetime",
	"content",
	"thanks_users",
	"thanks_count",
}

// Row returns the record's values in PostColumns order.
func (p PostRecord) Row() []string {
	return []string{
		p.ForumID,
		p.PostID,
		p.Title,
		p.Username,
		p.UserID,
		p.Rank,
		p.PostCount,
		p.RegistrationDate,
		p.Profession,
		p.Location,
		p.ThanksGiven,
		p.ThanksReceived,
		p.Datetime,
		p.Content,
		p.ThanksUsers,
		strconv.Itoa(p.ThanksCount),
	}
}
