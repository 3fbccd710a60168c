package extract

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/zvalenta/forumscan/internal/model"
)

// Forum markup anchors. phpBB renders every post as a div.post with a
// dl.postprofile author column and a div.postbody message column; the
// profile labels and the thanks line are locale-fixed strings.
const (
	labelRegistered = "Registrován:"
	labelProfession = "Profese:"
	labelLocation   = "Bydliště:"

	// thanksLineMarker identifies the definition list that holds the
	// "the following users thanked the author" line.
	thanksLineMarker = "poděkovali autorovi"

	// replyPrefix is stripped from post titles exactly once, and only
	// at the start of the string.
	replyPrefix = "Re: "
)

// explicitThanksCount extracts the authoritative total from the thanks
// line ("... poděkovali autorovi ... celkem 12").
var explicitThanksCount = regexp.MustCompile(`celkem (\d+)`)

// Posts extracts every post from a forum topic page, in document order.
// forumID is the topic identifier the page belongs to; it is carried
// into every record. Pages without post containers yield an empty slice.
func Posts(r io.Reader, forumID string) ([]model.PostRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var records []model.PostRecord
	doc.Find("div.post").Each(func(_ int, post *goquery.Selection) {
		record := model.PostRecord{ForumID: forumID}
		extractAuthor(post, &record)
		extractPostBody(post, &record)
		records = append(records, record)
	})

	return records, nil
}

// extractAuthor fills the author-profile half of the record. Every field
// is optional in the markup; absence leaves the schema default in place.
func extractAuthor(post *goquery.Selection, record *model.PostRecord) {
	profile := post.Find("dl.postprofile").First()
	if profile.Length() == 0 {
		return
	}

	// Colored usernames take a different class than plain ones.
	username := firstOf(profile, "a.username-coloured", "a.username")
	if username.Length() > 0 {
		record.Username = selectionText(username)
		record.UserID = hrefQueryParam(username.AttrOr("href", ""), "u")
	}

	record.Rank = selectionText(profile.Find("dd.profile-rank").First())
	record.PostCount = selectionText(profile.Find("dd.profile-posts a").First())

	if v, ok := labeledText(profile.Find("dd.profile-joined").First(), labelRegistered); ok {
		record.RegistrationDate = v
	}
	if v, ok := labeledText(profile.Find("dd.profile-custom-field.profile-profese").First(), labelProfession); ok {
		record.Profession = v
	}
	if v, ok := labeledText(profile.Find("dd.profile-custom-field.profile-phpbb_location").First(), labelLocation); ok {
		record.Location = v
	}

	record.ThanksGiven = firstDigits(profile.Find("dd[data-user-give-id] a").First().Text())
	record.ThanksReceived = firstDigits(profile.Find("dd[data-user-receive-id] a").First().Text())
}

// extractPostBody fills the message half of the record: identifier,
// title, timestamp, body text, and the thanks line.
func extractPostBody(post *goquery.Selection, record *model.PostRecord) {
	record.PostID = strings.TrimPrefix(post.AttrOr("id", ""), "p")

	body := post.Find("div.postbody").First()
	if body.Length() == 0 {
		return
	}

	title := body.Find("h3").First().Find("a").First()
	if title.Length() > 0 {
		record.Title = strings.TrimPrefix(selectionText(title), replyPrefix)
	}

	timeElem := body.Find("p.author").First().Find("time").First()
	if timeElem.Length() > 0 {
		record.Datetime = normalizeDatetime(timeElem.AttrOr("datetime", ""), timeElem.Text())
	}

	record.Content = selectionText(body.Find("div.content").First())

	extractThanks(body, record)
}

// extractThanks parses the optional "thanked by" line. The explicit
// "celkem N" total is authoritative; when it is missing, the number of
// listed names is used. Without the line, the defaults ("" and 0) stand.
func extractThanks(body *goquery.Selection, record *model.PostRecord) {
	body.Find("dl").EachWithBreak(func(_ int, dl *goquery.Selection) bool {
		dt := dl.Find("dt").First()
		if dt.Length() == 0 || !strings.Contains(dt.Text(), thanksLineMarker) {
			return true // keep looking
		}

		count := -1
		if m := explicitThanksCount.FindStringSubmatch(dt.Text()); m != nil {
			// Regex guarantees digits; ignore the impossible error.
			count = atoiOrZero(m[1])
		}

		var names []string
		dl.Find("dd").First().Find("a.username-coloured, a.username").Each(func(_ int, link *goquery.Selection) {
			names = append(names, selectionText(link))
		})

		record.ThanksUsers = strings.Join(names, ", ")
		if count >= 0 {
			record.ThanksCount = count
		} else {
			record.ThanksCount = len(names)
		}
		return false
	})
}

// atoiOrZero converts a digit string, returning 0 on overflow or junk.
func atoiOrZero(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
