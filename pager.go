package steamworkshop

import "context"

// SearchPager walks the pages of a search.
//
// Use [Client.SearchPages] to create one, then iterate:
//
//	pager := client.SearchPages(&steamworkshop.SearchOptions{
//	    Query: "zombie",
//	    AppID: 550,
//	})
//	for pager.Next(ctx) {
//	    for _, item := range pager.Page().Items {
//	        fmt.Println(item)
//	    }
//	}
//	if err := pager.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// The cursor lives in the pager, so the Client stays stateless. A pager is
// not safe for concurrent use; create one per goroutine.
type SearchPager struct {
	client  *Client
	opts    SearchOptions
	current *SearchResult
	err     error
	done    bool
	seen    map[string]struct{}
}

// SearchPages returns a pager starting at opts.Cursor. opts is copied.
func (c *Client) SearchPages(opts *SearchOptions) *SearchPager {
	p := &SearchPager{
		client: c,
		seen:   make(map[string]struct{}),
	}
	if opts != nil {
		p.opts = *opts
	}
	return p
}

// Next fetches the next page.
//
// Returns true if a page with at least one item is available, false when
// the search is exhausted or an error occurred. Call [SearchPager.Err] to
// tell the two apart.
//
// Items already returned on an earlier page are dropped, so the pages a
// pager yields never overlap even if Steam's ranking shifts mid-walk.
func (p *SearchPager) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}

	page, err := p.client.SearchItems(ctx, &p.opts)
	if err != nil {
		p.err = err
		return false
	}

	if page.Done() {
		p.done = true
	} else {
		p.opts.Cursor = page.NextCursor
	}

	fresh := page.Items[:0:0]
	for _, item := range page.Items {
		if _, dup := p.seen[item.ID]; dup {
			continue
		}
		p.seen[item.ID] = struct{}{}
		fresh = append(fresh, item)
	}
	page.Items = fresh

	if len(page.Items) == 0 {
		// A page of only repeats means Steam is cycling.
		p.done = true
		return false
	}

	p.current = page
	return true
}

// Page returns the current page. Call this after [SearchPager.Next]
// returns true.
func (p *SearchPager) Page() *SearchResult {
	return p.current
}

// Err returns the error that stopped iteration, or nil.
func (p *SearchPager) Err() error {
	return p.err
}

// Cursor returns the cursor the next call to Next will send. Save it to
// resume a walk later with a new pager.
func (p *SearchPager) Cursor() string {
	return p.opts.Cursor
}
