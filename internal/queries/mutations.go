package queries

import "shopx-support-console/internal/gqlclient"

// Mutations default to ThrowOnErrors: a caller with side effects must
// not be able to proceed as if the mutation succeeded.

var CreateProduct = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:             "CustomerSupportCreateProduct",
	Kind:             gqlclient.Mutation,
	ThrowOnErrors:    true,
	PreProcessClient: []gqlclient.VarsHook{AttachImagePayload},
	Operation: `mutation CustomerSupportCreateProduct($name: String!, $price: Float!, $description: String, $categoryId: ID!, $image: ProductImageUploadInput) {
  customerSupport {
    addProduct(name: $name, price: $price, description: $description, categoryId: $categoryId, image: $image) {
      id
      name
      price
      description
      categoryId
      image {
        url
        filename
        mimeType
        updatedAt
      }
    }
  }
}`,
})

var UpdateProduct = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:             "CustomerSupportUpdateProduct",
	Kind:             gqlclient.Mutation,
	ThrowOnErrors:    true,
	PreProcessClient: []gqlclient.VarsHook{AttachImagePayload},
	Operation: `mutation CustomerSupportUpdateProduct($id: ID!, $name: String, $price: Float, $description: String, $categoryId: ID, $image: ProductImageUploadInput, $removeImage: Boolean) {
  customerSupport {
    updateProduct(id: $id, name: $name, price: $price, description: $description, categoryId: $categoryId, image: $image, removeImage: $removeImage) {
      id
      name
      price
      description
      categoryId
      image {
        url
        filename
        mimeType
        updatedAt
      }
    }
  }
}`,
})

var DeleteProduct = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportDeleteProduct",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportDeleteProduct($id: ID!) {
  customerSupport {
    deleteProduct(id: $id)
  }
}`,
})

var UpdateOrderStatus = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportUpdateOrderStatus",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportUpdateOrderStatus($orderId: ID!, $status: String!) {
  customerSupport {
    updateOrderStatus(orderId: $orderId, status: $status) {
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

var CreateUser = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportCreateUser",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportCreateUser($email: String!, $password: String!, $name: String, $role: UserRole!) {
  customerSupport {
    createUser(email: $email, password: $password, name: $name, role: $role) {
      id
      email
      name
      role
    }
  }
}`,
})

var UpdateUser = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportUpdateUser",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportUpdateUser($id: ID!, $email: String, $password: String, $name: String, $role: UserRole) {
  customerSupport {
    updateUser(id: $id, email: $email, password: $password, name: $name, role: $role) {
      id
      email
      name
      role
    }
  }
}`,
})

var DeleteUser = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportDeleteUser",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportDeleteUser($id: ID!) {
  customerSupport {
    deleteUser(id: $id)
  }
}`,
})

var LogoutUserSessions = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportLogoutUserSessions",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportLogoutUserSessions($userId: ID!) {
  customerSupport {
    logoutUserSessions(userId: $userId)
  }
}`,
})

var ImpersonateUser = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportImpersonateUser",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportImpersonateUser($userId: ID!) {
  customerSupport {
    impersonateUser(userId: $userId) {
      token
      user {
        id
        email
        name
        role
      }
    }
  }
}`,
})
