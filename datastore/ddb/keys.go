/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityregistry/storagemodels"
)

// EntityType values stored on every item.
const (
	entityTypeEntity = "Entity"
	entityTypeBucket = "OwnerBucket"
	entityTypeMeta   = "RegistryMeta"

	attrEntityType = "EntityType"
	attrNextID     = "NextId"
	attrRevision   = "Revision"
)

var (
	entityIndexMap = map[string]string{"PK": "ENTITY#{ID}", "SK": "ENTITY#{ID}"}
	bucketIndexMap = map[string]string{"PK": "OWNER#{Owner}", "SK": "BUCKET"}
	metaIndexMap   = map[string]string{"PK": "META", "SK": "NEXT_ID"}
)

// bucketRecord is the stored form of one owner bucket.
type bucketRecord struct {
	Owner    storagemodels.Identity `dynamodbav:"Owner"`
	Entities []storagemodels.Entity `dynamodbav:"Entities"`
}

// metaRecord is the stored form of the NextId cell and the store revision.
type metaRecord struct {
	NextID   uint32 `dynamodbav:"NextId"`
	Revision uint64 `dynamodbav:"Revision"`
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces every {Field} in the index map templates with the
// matching attribute of keysInput.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		var missing string
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			default:
				missing = key
				return ""
			}
		})
		if missing != "" {
			return nil, fmt.Errorf("macro {%s} in %s has no string or number value", missing, fieldName)
		}
		res[fieldName] = expanded
	}
	return res, nil
}

// buildItem marshals record and adds its keys and EntityType.
func buildItem(indexMap map[string]string, entityType string, record any) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", entityType, err)
	}
	keys, err := expandMacros(indexMap, record)
	if err != nil {
		return nil, err
	}
	for k, v := range keys {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	item[attrEntityType] = &types.AttributeValueMemberS{Value: entityType}
	return item, nil
}

func entityItem(e storagemodels.Entity) (map[string]types.AttributeValue, error) {
	return buildItem(entityIndexMap, entityTypeEntity, e)
}

func bucketItem(owner storagemodels.Identity, bucket []storagemodels.Entity) (map[string]types.AttributeValue, error) {
	return buildItem(bucketIndexMap, entityTypeBucket, bucketRecord{Owner: owner, Entities: storagemodels.CloneBucket(bucket)})
}

func metaItem(next uint32, revision uint64) (map[string]types.AttributeValue, error) {
	return buildItem(metaIndexMap, entityTypeMeta, metaRecord{NextID: next, Revision: revision})
}
