/*
Package ddb provides a DynamoDB implementation of the StateStore interface.

The StateStore uses a single-table design. Every item carries an EntityType
attribute and keys built from macro templates:

	entityIndexMap := map[string]string{
	    "PK": "ENTITY#{ID}",      // Becomes "ENTITY#42"
	    "SK": "ENTITY#{ID}",
	}
	bucketIndexMap := map[string]string{
	    "PK": "OWNER#{Owner}",    // Becomes "OWNER#alice"
	    "SK": "BUCKET",           // Static value
	}

The NextId counter lives in a META item.

Commit:
A change becomes one TransactWriteItems call. The NextId put is conditional on the
value the change was staged against, so two writers racing on the same table cannot
both mint the same identifier.

Load:
The table is scanned page by page with retries on throttling:

	store, _ := ddb.NewStateStore(ctx, key, secret, "us-east-1", "registry",
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.LoadProgress) {
	        log.Printf("Loaded %d items", p.ItemsLoaded)
	    }),
	)
*/
package ddb
