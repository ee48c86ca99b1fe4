// Package hypermedia synthesizes the HATEOAS links embedded in API responses.
package hypermedia

import "fmt"

// Link is a single hypermedia relation target.
type Link struct {
	Href string `json:"href"`
}

// Links maps a relation name to its target.
type Links map[string]Link

// PostLinks returns the fixed relation set for a single post: self,
// collection, interests sub-resource and author. Pure function, no I/O.
func PostLinks(postID int) Links {
	return Links{
		"self":       {Href: fmt.Sprintf("/posts/%d", postID)},
		"collection": {Href: "/posts"},
		"interests":  {Href: fmt.Sprintf("/posts/%d/interests", postID)},
		"author":     {Href: fmt.Sprintf("/users/%d", postID)},
	}
}

// CollectionLinks derives the pagination relations for a collection page.
// "next" is present only while skip+limit < total; "prev" only while skip > 0.
func CollectionLinks(skip, limit, total int) Links {
	last := (total - 1) / limit * limit
	if last < 0 {
		last = 0
	}

	links := Links{
		"self":  {Href: pageHref(skip, limit)},
		"first": {Href: pageHref(0, limit)},
		"last":  {Href: pageHref(last, limit)},
	}

	if skip+limit < total {
		links["next"] = Link{Href: pageHref(skip+limit, limit)}
	}
	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		links["prev"] = Link{Href: pageHref(prev, limit)}
	}

	return links
}

func pageHref(skip, limit int) string {
	return fmt.Sprintf("/posts?skip=%d&limit=%d", skip, limit)
}
