package catalogdb_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/catalogdb"
	"github.com/hupe1980/catalogdb/blobstore"
	"github.com/hupe1980/catalogdb/source"
)

const exampleRecord = `{
	"gid": %d, "token": "0a1b2c3d4e", "category": "Manga", "dumped": 1700000000,
	"current_gid": null, "first_gid": null, "parent_gid": null, "expunged": false,
	"filecount": "24", "filesize": 1048576, "posted": "1690000000", "rating": "4.50",
	"tags": ["artist:someone", "full color"],
	"thumb": "https://ehgt.org/ab/cd/thumb.jpg", "title": %q, "title_jpn": null,
	"torrentcount": 0, "torrents": [], "uploader": "alice"
}`

// Example_build demonstrates building a catalog from a bulk and a single
// collection and looking up a record.
func Example_build() {
	ctx := context.Background()

	// Both collections live in one store under different prefixes
	store := blobstore.NewMemoryStore()
	store.Put("bulk/0001.json", []byte("["+
		fmt.Sprintf(exampleRecord, 1, "First")+","+
		fmt.Sprintf(exampleRecord, 2, "Second")+"]"))
	store.Put("single/1.json", []byte(fmt.Sprintf(exampleRecord, 1, "First (revised)")))

	st, err := catalogdb.Build(ctx, catalogdb.Input{
		Bulk:   source.Collection{Store: store, Prefix: "bulk/"},
		Single: source.Collection{Store: store, Prefix: "single/"},
	})
	if err != nil {
		log.Fatal(err)
	}

	e, err := st.Get(1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("records:", st.Len())
	fmt.Println("title:", e.Title)
	fmt.Println("uploader:", e.Uploader)
	fmt.Println("from single:", st.FromSingle(1))
	for _, tag := range e.Tags {
		fmt.Println("tag:", tag)
	}

	_, err = st.Get(3)
	fmt.Println("missing:", err != nil)

	// Output:
	// records: 2
	// title: First (revised)
	// uploader: alice
	// from single: true
	// tag: artist:someone
	// tag: full color
	// missing: true
}
