package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zvalenta/forumscan/internal/model"
)

// fullPost is a realistic phpBB post container with every optional
// author field present.
const fullPost = `
<div id="p102" class="post has-profile bg2">
  <dl class="postprofile">
    <dt><a href="./memberlist.php?mode=viewprofile&amp;u=123" class="username-coloured" style="color:#AA0000">alice</a></dt>
    <dd class="profile-rank">Zastupitel</dd>
    <dd class="profile-posts">Příspěvky: <a href="./search.php?author_id=123">1234</a></dd>
    <dd class="profile-joined">Registrován: 12 kvě 2019, 10:30</dd>
    <dd class="profile-custom-field profile-profese">Profese: programátor</dd>
    <dd class="profile-custom-field profile-phpbb_location">Bydliště: Praha</dd>
    <dd data-user-give-id="123"><a href="#">Poděkoval: 31 krát</a></dd>
    <dd data-user-receive-id="123"><a href="#">Obdržel poděkování: 57 krát</a></dd>
  </dl>
  <div class="postbody">
    <h3 class="first"><a href="#p102">Re: Volba předsednictva</a></h3>
    <p class="author">od <strong>alice</strong> » <time datetime="2022-02-01T14:05:30+01:00">1 únor 2022, 14:05</time></p>
    <div class="content">Souhlasím s návrhem.
        Hlasujme   co nejdříve.</div>
    <dl class="postlinks">
      <dt>Za tento příspěvek poděkovali autorovi alice (celkem 3):</dt>
      <dd><a href="#" class="username">bob</a>, <a href="#" class="username-coloured">carol</a></dd>
    </dl>
  </div>
</div>`

// barePost has no author profile and no optional post parts.
const barePost = `
<div id="p900" class="post">
  <div class="postbody">
    <h3><a href="#p900">Strohý příspěvek</a></h3>
    <div class="content">text</div>
  </div>
</div>`

func page(posts ...string) string {
	return "<html><body><div id='page-body'>" + strings.Join(posts, "\n") + "</div></body></html>"
}

func TestPosts(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field of a full post", func(t *testing.T) {
		t.Parallel()

		records, err := Posts(strings.NewReader(page(fullPost)), "38314")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}

		got := records[0]
		want := model.PostRecord{
			ForumID:          "38314",
			PostID:           "102",
			Title:            "Volba předsednictva",
			Username:         "alice",
			UserID:           "123",
			Rank:             "Zastupitel",
			PostCount:        "1234",
			RegistrationDate: "12 kvě 2019, 10:30",
			Profession:       "programátor",
			Location:         "Praha",
			ThanksGiven:      "31",
			ThanksReceived:   "57",
			Datetime:         "2022-02-01 14:05:30",
			Content:          "Souhlasím s návrhem. Hlasujme co nejdříve.",
			ThanksUsers:      "bob, carol",
			ThanksCount:      3,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("record mismatch:\n got: %+v\nwant: %+v", got, want)
		}
	})

	t.Run("missing optional fields keep schema defaults", func(t *testing.T) {
		t.Parallel()

		records, err := Posts(strings.NewReader(page(barePost)), "7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}

		got := records[0]
		if got.ForumID != "7" || got.PostID != "900" || got.Title != "Strohý příspěvek" || got.Content != "text" {
			t.Errorf("core fields wrong: %+v", got)
		}
		for name, v := range map[string]string{
			"username":          got.Username,
			"user_id":           got.UserID,
			"rank":              got.Rank,
			"post_count":        got.PostCount,
			"registration_date": got.RegistrationDate,
			"profession":        got.Profession,
			"location":          got.Location,
			"thanks_given":      got.ThanksGiven,
			"thanks_received":   got.ThanksReceived,
			"datetime":          got.Datetime,
			"thanks_users":      got.ThanksUsers,
		} {
			if v != "" {
				t.Errorf("%s: expected empty default, got %q", name, v)
			}
		}
		if got.ThanksCount != 0 {
			t.Errorf("thanks_count: expected 0, got %d", got.ThanksCount)
		}
		// The 16-column row is complete regardless of the markup.
		if len(got.Row()) != len(model.PostColumns) {
			t.Errorf("expected %d columns, got %d", len(model.PostColumns), len(got.Row()))
		}
	})

	t.Run("strips reply prefix exactly once", func(t *testing.T) {
		t.Parallel()

		markup := page(`<div id="p1" class="post"><div class="postbody">
			<h3><a href="#">Re: Re: X</a></h3></div></div>`)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		if records[0].Title != "Re: X" {
			t.Errorf("expected %q, got %q", "Re: X", records[0].Title)
		}
	})

	t.Run("plain username class is the fallback", func(t *testing.T) {
		t.Parallel()

		markup := page(`<div id="p2" class="post">
			<dl class="postprofile"><dt><a href="./memberlist.php?mode=viewprofile&amp;u=9" class="username">bob</a></dt></dl>
			<div class="postbody"></div></div>`)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		if records[0].Username != "bob" || records[0].UserID != "9" {
			t.Errorf("expected bob/9, got %q/%q", records[0].Username, records[0].UserID)
		}
	})

	t.Run("thanks count falls back to listed names", func(t *testing.T) {
		t.Parallel()

		markup := page(`<div id="p3" class="post"><div class="postbody">
			<dl><dt>Za tento příspěvek poděkovali autorovi bob:</dt>
			<dd><a class="username" href="#">carol</a> a <a class="username" href="#">dave</a></dd></dl>
			</div></div>`)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		if records[0].ThanksCount != 2 {
			t.Errorf("expected fallback count 2, got %d", records[0].ThanksCount)
		}
		if records[0].ThanksUsers != "carol, dave" {
			t.Errorf("expected listed names, got %q", records[0].ThanksUsers)
		}
	})

	t.Run("unrelated definition lists are not a thanks line", func(t *testing.T) {
		t.Parallel()

		markup := page(`<div id="p4" class="post"><div class="postbody">
			<dl class="attachbox"><dt>Přílohy</dt><dd><a class="username" href="#">not-a-thanker</a></dd></dl>
			</div></div>`)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		if records[0].ThanksUsers != "" || records[0].ThanksCount != 0 {
			t.Errorf("expected no thanks, got %q/%d", records[0].ThanksUsers, records[0].ThanksCount)
		}
	})

	t.Run("datetime falls back to visible label", func(t *testing.T) {
		t.Parallel()

		markup := page(`<div id="p5" class="post"><div class="postbody">
			<p class="author"><time>1 únor 2022, 14:05</time></p></div></div>`)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		if records[0].Datetime != "1 únor 2022 14:05" {
			t.Errorf("expected visible fallback, got %q", records[0].Datetime)
		}
	})

	t.Run("posts come out in document order", func(t *testing.T) {
		t.Parallel()

		markup := page(
			`<div id="p10" class="post"><div class="postbody"></div></div>`,
			`<div id="p11" class="post"><div class="postbody"></div></div>`,
			`<div id="p12" class="post"><div class="postbody"></div></div>`,
		)
		records, err := Posts(strings.NewReader(markup), "1")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"10", "11", "12"}
		for i, r := range records {
			if r.PostID != want[i] {
				t.Errorf("record %d: expected post %s, got %s", i, want[i], r.PostID)
			}
		}
	})

	t.Run("page without posts yields empty slice", func(t *testing.T) {
		t.Parallel()

		records, err := Posts(strings.NewReader("<html><body><p>no posts here</p></body></html>"), "1")
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		markup := page(fullPost, barePost)
		first, err := Posts(strings.NewReader(markup), "38314")
		if err != nil {
			t.Fatal(err)
		}
		second, err := Posts(strings.NewReader(markup), "38314")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("identical markup must yield identical record sequences")
		}
	})
}
