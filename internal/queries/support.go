// Package queries registers every backend operation the console uses.
// One descriptor per operation, constructed once at load; the
// operation text is serialized to canonical form at that point.
package queries

import "shopx-support-console/internal/gqlclient"

// Session is the minimal probe the session guard runs: it asks for
// nothing but the authenticated-context marker.
var Session = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportSession",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportSession {
  customerSupport {
    __typename
  }
}`,
})

var Products = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportProducts",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportProducts($limit: Int, $offset: Int, $name: String, $categoryId: ID) {
  customerSupport {
    products(limit: $limit, offset: $offset, name: $name, categoryId: $categoryId) {
      id
      name
      price
      description
      categoryId
      category {
        id
        name
      }
      image {
        url
        filename
        mimeType
        updatedAt
      }
    }
    categories(limit: 50) {
      id
      name
    }
  }
}`,
})

var Orders = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportOrders",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportOrders($limit: Int, $offset: Int, $status: String, $userId: ID) {
  customerSupport {
    orders(limit: $limit, offset: $offset, status: $status, userId: $userId) {
      id
      userId
      total
      status
      createdAt
      updatedAt
    }
  }
}`,
})

var OrderDetail = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportOrderDetail",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportOrderDetail($orderId: ID!) {
  customerSupport {
    order(orderId: $orderId) {
      id
      userId
      total
      status
      createdAt
      updatedAt
      products {
        productId
        quantity
        price
      }
    }
  }
}`,
})

var Users = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportUsers",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportUsers($email: String, $role: UserRole) {
  customerSupport {
    users(email: $email, role: $role) {
      id
      email
      name
      role
    }
  }
}`,
})

var Overview = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportOverview",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportOverview($productLimit: Int, $orderLimit: Int) {
  customerSupport {
    orders(limit: $orderLimit) {
      id
      total
      status
    }
    products(limit: $productLimit) {
      id
    }
    users {
      id
      role
    }
    reviews {
      id
      rating
    }
  }
}`,
})

var CustomerProfile = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportCustomerProfile",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportCustomerProfile($userId: ID!) {
  customerSupport {
    userContext(userId: $userId) {
      user {
        id
        email
        name
        role
      }
      addresses {
        id
        userId
        street
        city
        postalCode
        country
      }
      cart {
        userId
        total
        items {
          quantity
          product {
            id
            name
            price
          }
        }
      }
      wishlist {
        userId
        products {
          id
          name
          price
        }
      }
    }
    orders(userId: $userId) {
      id
      total
      status
      createdAt
    }
    reviews(userId: $userId) {
      id
      productId
      rating
      reviewText
      createdAt
    }
  }
}`,
})
