// Package factorlink links entities through shared factors.
//
// A factor is an attribute of an entity document in a search index, such
// as a phone number, email address, ad text or title. Entities sharing a
// factor value are linked; repeatedly following those links expands a
// single entity into a network of related entities.
//
// The package answers four kinds of questions:
//
//   - which factors does an entity carry (Available)
//   - what values does a factor take for an entity (Lookup, Suggest)
//   - which entities share a factor value (ReverseLookup)
//   - what network emerges from following shared values (Expand)
//
// # Basic Usage
//
// Create a client over an Elasticsearch index:
//
//	searcher, err := index.NewElastic(index.Config{
//		Addresses: []string{"http://localhost:9200"},
//		Index:     "ads",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client := factorlink.NewClient(searcher)
//
//	// Build the factor map for one entity and expand it two degrees.
//	network, err := client.Expand(ctx, "63166071", 2, "phone", "email")
//
// The top-level Client composes the factor query layer with a concurrent
// network expander. Depend on one of the narrower interfaces when less
// is needed.
package factorlink
