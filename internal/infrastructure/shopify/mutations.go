package shopify

import "simple-gifting/internal/domain"

const productUpdateMutation = `
mutation updateProduct($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      tags
    }
    userErrors {
      field
      message
    }
  }
}
`

const metafieldsDeleteMutation = `
mutation metafieldsDelete($metafields: [MetafieldIdentifierInput!]!) {
  metafieldsDelete(metafields: $metafields) {
    deletedMetafields {
      key
      namespace
      ownerId
    }
    userErrors {
      field
      message
    }
  }
}
`

const metafieldDefinitionCreateMutation = `
mutation CreateMetafieldDefinition($definition: MetafieldDefinitionInput!) {
  metafieldDefinitionCreate(definition: $definition) {
    createdDefinition {
      id
      name
      namespace
      key
    }
    userErrors {
      field
      message
    }
  }
}
`

type productUpdateResponse struct {
	ProductUpdate struct {
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"productUpdate"`
}

type metafieldsDeleteResponse struct {
	MetafieldsDelete struct {
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"metafieldsDelete"`
}

type metafieldDefinitionCreateResponse struct {
	MetafieldDefinitionCreate struct {
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"metafieldDefinitionCreate"`
}
