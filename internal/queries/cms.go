package queries

import "shopx-support-console/internal/gqlclient"

var CmsPages = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportCmsPages",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportCmsPages($status: CmsStatus, $search: String) {
  customerSupport {
    cmsPages(status: $status, search: $search) {
      id
      slug
      title
      excerpt
      status
      updatedAt
      publishedAt
    }
  }
}`,
})

var CmsPage = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name: "CustomerSupportCmsPage",
	Kind: gqlclient.Query,
	Operation: `query CustomerSupportCmsPage($id: ID, $slug: String) {
  customerSupport {
    cmsPage(id: $id, slug: $slug) {
      id
      slug
      title
      excerpt
      body
      status
      updatedAt
      publishedAt
    }
  }
}`,
})

var CreateCmsPage = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportCreateCmsPage",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportCreateCmsPage($input: CmsPageCreateInput!) {
  customerSupport {
    createCmsPage(input: $input) {
      id
      slug
      title
      excerpt
      body
      status
      updatedAt
      publishedAt
    }
  }
}`,
})

var UpdateCmsPage = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportUpdateCmsPage",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportUpdateCmsPage($id: ID!, $input: CmsPageUpdateInput!) {
  customerSupport {
    updateCmsPage(id: $id, input: $input) {
      id
      slug
      title
      excerpt
      body
      status
      updatedAt
      publishedAt
    }
  }
}`,
})

var PublishCmsPage = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportPublishCmsPage",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportPublishCmsPage($id: ID!) {
  customerSupport {
    publishCmsPage(id: $id) {
      id
      slug
      title
      excerpt
      body
      status
      updatedAt
      publishedAt
    }
  }
}`,
})

var DeleteCmsPage = gqlclient.MustDescriptor(gqlclient.DescriptorConfig{
	Name:          "CustomerSupportDeleteCmsPage",
	Kind:          gqlclient.Mutation,
	ThrowOnErrors: true,
	Operation: `mutation CustomerSupportDeleteCmsPage($id: ID!) {
  customerSupport {
    deleteCmsPage(id: $id)
  }
}`,
})
