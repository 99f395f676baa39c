package shopify

import "simple-gifting/internal/domain"

const mainThemeQuery = `
query getMainThemeId {
  themes(first: 1, roles: [MAIN]) {
    nodes {
      id
      name
    }
  }
}
`

const themeFilesQuery = `
query getFiles($filenames: [String!]!, $themeId: ID!) {
  theme(id: $themeId) {
    files(filenames: $filenames) {
      nodes {
        filename
        body {
          ... on OnlineStoreThemeFileBodyText { content }
          ... on OnlineStoreThemeFileBodyBase64 { contentBase64 }
        }
      }
    }
  }
}
`

// productFields selects a product with its variants and gifting metafields.
// Aliases avoid clashing with the native productType field.
const productFields = `
fragment GiftingProductFields on Product {
  id
  title
  handle
  status
  totalInventory
  tags
  productType
  featuredImage {
    url
  }
  variants(first: 10) {
    edges {
      node {
        id
        title
        price
      }
    }
  }
  giftingType: metafield(namespace: "simple_gifting", key: "product_type") {
    value
  }
  maxChars: metafield(namespace: "simple_gifting", key: "max_chars") {
    value
  }
  ribbonLength: metafield(namespace: "simple_gifting", key: "ribbon_length") {
    value
  }
  customizable: metafield(namespace: "simple_gifting", key: "customizable") {
    value
  }
}
`

const productsQuery = `
query getGiftingProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    edges {
      node {
        ...GiftingProductFields
      }
    }
  }
}
` + productFields

const productQuery = `
query getProduct($id: ID!) {
  product(id: $id) {
    ...GiftingProductFields
  }
}
` + productFields

const anyProductQuery = `
query getDashboardStats {
  products(first: 1) {
    edges {
      node {
        id
      }
    }
  }
}
`

const metafieldDefinitionsQuery = `
query metafieldDefinitions($namespace: String!) {
  metafieldDefinitions(first: 10, ownerType: PRODUCT, namespace: $namespace) {
    edges {
      node {
        id
        key
      }
    }
  }
}
`

type mainThemeResponse struct {
	Themes struct {
		Nodes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"themes"`
}

type themeFilesResponse struct {
	Theme *struct {
		Files struct {
			Nodes []struct {
				Filename string `json:"filename"`
				Body     struct {
					Content       string `json:"content"`
					ContentBase64 string `json:"contentBase64"`
				} `json:"body"`
			} `json:"nodes"`
		} `json:"files"`
	} `json:"theme"`
}

type metafieldValue struct {
	Value string `json:"value"`
}

type productNode struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Handle         string   `json:"handle"`
	Status         string   `json:"status"`
	TotalInventory int      `json:"totalInventory"`
	Tags           []string `json:"tags"`
	ProductType    string   `json:"productType"`
	FeaturedImage  *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Price string `json:"price"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	GiftingType  *metafieldValue `json:"giftingType"`
	MaxChars     *metafieldValue `json:"maxChars"`
	RibbonLength *metafieldValue `json:"ribbonLength"`
	Customizable *metafieldValue `json:"customizable"`
}

func (n *productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:             n.ID,
		Title:          n.Title,
		Handle:         n.Handle,
		Status:         n.Status,
		TotalInventory: n.TotalInventory,
		Tags:           n.Tags,
		ProductType:    n.ProductType,
		Variants:       make([]domain.Variant, 0, len(n.Variants.Edges)),
	}
	p.GiftingSettings = domain.GiftingSettings{
		ProductType:  n.GiftingType.ptr(),
		MaxChars:     n.MaxChars.ptr(),
		RibbonLength: n.RibbonLength.ptr(),
		Customizable: n.Customizable.ptr(),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if n.FeaturedImage != nil {
		p.FeaturedImage = n.FeaturedImage.URL
	}
	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, domain.Variant{
			ID:    edge.Node.ID,
			Title: edge.Node.Title,
			Price: edge.Node.Price,
		})
	}
	return p
}

func (m *metafieldValue) ptr() *string {
	if m == nil {
		return nil
	}
	v := m.Value
	return &v
}

type productsResponse struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productResponse struct {
	Product *productNode `json:"product"`
}

type metafieldDefinitionsResponse struct {
	MetafieldDefinitions struct {
		Edges []struct {
			Node struct {
				ID  string `json:"id"`
				Key string `json:"key"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"metafieldDefinitions"`
}
