package catalog

const productItemFragment = `
fragment MoneyProductItem on MoneyV2 {
  amount
  currencyCode
}

fragment ProductItem on Product {
  id
  handle
  title
  tags
  featuredImage {
    id
    altText
    url
    width
    height
  }
  priceRange {
    minVariantPrice {
      ...MoneyProductItem
    }
    maxVariantPrice {
      ...MoneyProductItem
    }
  }
}
`

const productsByIDsQuery = productItemFragment + `
query ProductsByIDs($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      ...ProductItem
    }
  }
}
`

const catalogQuery = productItemFragment + `
query CatalogAndCollections(
  $first: Int
  $last: Int
  $before: String
  $after: String
  $query: String
  $firstCollections: Int
) {
  products(first: $first, last: $last, before: $before, after: $after, query: $query) {
    nodes {
      ...ProductItem
    }
    pageInfo {
      hasPreviousPage
      hasNextPage
      startCursor
      endCursor
    }
  }
  collections(first: $firstCollections) {
    nodes {
      id
      handle
      title
    }
  }
}
`

const productVariantFragment = `
fragment ProductVariant on ProductVariant {
  availableForSale
  compareAtPrice {
    amount
    currencyCode
  }
  id
  image {
    id
    url
    altText
    width
    height
  }
  price {
    amount
    currencyCode
  }
  selectedOptions {
    name
    value
  }
  sku
  title
}
`

const productByHandleQuery = productVariantFragment + `
query Product($handle: String!, $selectedOptions: [SelectedOptionInput!]!) {
  product(handle: $handle) {
    id
    title
    vendor
    handle
    tags
    description
    descriptionHtml
    featuredImage {
      id
      url
      altText
      width
      height
    }
    priceRange {
      minVariantPrice {
        amount
        currencyCode
      }
      maxVariantPrice {
        amount
        currencyCode
      }
    }
    selectedOrFirstAvailableVariant(selectedOptions: $selectedOptions) {
      ...ProductVariant
    }
  }
}
`

const allHandlesQuery = `
query GetAllProductHandles($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {
        handle
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}
`

const contactQuery = `
query Contact {
  metaobjects(type: "contact", first: 10) {
    nodes {
      id
      street_adress: field(key: "street_adress") { value }
      phone_number: field(key: "phone_number") { value }
      e_mail: field(key: "e_mail") { value }
    }
  }
}
`

const faqQuery = `
query GetFAQs {
  metaobjects(type: "faq", first: 10) {
    nodes {
      id
      fields {
        key
        value
      }
    }
  }
}
`
