// internal/router/shop_test.go
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/testutil"
)

func (suite *APITestSuite) TestProductInsertAndMedia() {
	fields := map[string]string{
		"product_name": "Desk Lamp",
		"price":        "12.5",
		"quantity":     "3",
		"supplier":     "Lumen",
		"category":     "lighting",
	}

	w := suite.multipart(http.MethodPost, "/products/insert", fields, "image", "lamp.png", testutil.PNG, "")
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	product := suite.decode(w)["product"].(map[string]interface{})
	assert.Equal(suite.T(), "Desk Lamp", product["product_name"])
	assert.Equal(suite.T(), "12.50", product["price"])
	assert.Equal(suite.T(), float64(0), product["isFavourite"])

	// Local media is served by the API itself
	image := product["image"].(string)
	require.True(suite.T(), strings.HasPrefix(image, "http://localhost:8080/media/products/"), image)
	w = suite.do(http.MethodGet, strings.TrimPrefix(image, "http://localhost:8080"), nil, "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), testutil.PNG, w.Body.Bytes())

	w = suite.multipart(http.MethodPost, "/products/insert", fields, "image", "lamp.txt", []byte("not an image"), "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Unsupported image format", suite.decode(w)["errors"].(map[string]interface{})["image"])

	w = suite.multipart(http.MethodPost, "/products/insert", fields, "", "", nil, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "An image file is required", suite.decode(w)["errors"].(map[string]interface{})["image"])

	fields["price"] = "100000000"
	w = suite.multipart(http.MethodPost, "/products/insert", fields, "image", "lamp.png", testutil.PNG, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), suite.decode(w)["errors"], "price")

	fields["price"] = "cheap"
	w = suite.multipart(http.MethodPost, "/products/insert", fields, "image", "lamp.png", testutil.PNG, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), suite.decode(w)["errors"], "price")

	assert.Equal(suite.T(), int64(1), testutil.Count(suite.T(), suite.db, &models.Product{}, ""))
}

func (suite *APITestSuite) TestProductListing() {
	for i := 0; i < 3; i++ {
		testutil.CreateProduct(suite.T(), suite.db, fmt.Sprintf("Chair %d", i), "Oak & Co", "furniture", "40.00")
	}
	testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "12.00")

	w := suite.do(http.MethodGet, "/products?page=1&page_size=2", nil, "")
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "4", w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "2", w.Header().Get("X-Total-Pages"))

	response := suite.decode(w)
	assert.Len(suite.T(), response["products"], 2)
	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(4), pagination["total"])

	w = suite.do(http.MethodGet, "/products?category=lighting", nil, "")
	assert.Len(suite.T(), suite.decode(w)["products"], 1)

	w = suite.do(http.MethodGet, "/all_products", nil, "")
	assert.Len(suite.T(), suite.decode(w)["products"], 4)

	w = suite.do(http.MethodGet, "/products/search?q=oak", nil, "")
	assert.Len(suite.T(), suite.decode(w)["products"], 3)

	w = suite.do(http.MethodGet, "/products/search?q=nothing-matches", nil, "")
	assert.Equal(suite.T(), `{"products":[]}`, w.Body.String())
}

func (suite *APITestSuite) TestPosters() {
	_, token := suite.register("editor")

	w := suite.multipart(http.MethodPost, "/posters/insert", map[string]string{"title": "Sale"}, "image", "sale.png", testutil.PNG, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.multipart(http.MethodPost, "/posters/insert", map[string]string{"title": "Sale"}, "image", "sale.png", testutil.PNG, "not-a-token")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), "Invalid or expired token", suite.decode(w)["message"])

	w = suite.multipart(http.MethodPost, "/posters/insert", map[string]string{"title": "Sale"}, "image", "sale.png", testutil.PNG, token)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(suite.T(), "Sale", suite.decode(w)["poster"].(map[string]interface{})["title"])

	w = suite.do(http.MethodGet, "/posters", nil, "")
	assert.Len(suite.T(), suite.decode(w)["posters"], 1)
}

func (suite *APITestSuite) TestFavoritesFollowViewer() {
	user := testutil.CreateUser(suite.T(), suite.db, "fan", "fan@example.com")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "12.00")
	testutil.CreateProduct(suite.T(), suite.db, "Chair", "Oak", "furniture", "40.00")

	body := map[string]interface{}{"userId": user.ID, "productId": lamp.ID}

	w := suite.do(http.MethodPost, "/favorites/add", body, "")
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(suite.T(), true, suite.decode(w)["created"])

	w = suite.do(http.MethodPost, "/favorites/add", body, "")
	assert.Equal(suite.T(), false, suite.decode(w)["created"])
	assert.Equal(suite.T(), int64(1), testutil.Count(suite.T(), suite.db, &models.Notification{}, "user_id = ?", user.ID))

	w = suite.do(http.MethodGet, fmt.Sprintf("/all_products?userId=%d", user.ID), nil, "")
	for _, raw := range suite.decode(w)["products"].([]interface{}) {
		product := raw.(map[string]interface{})
		if product["product_name"] == "Lamp" {
			assert.Equal(suite.T(), float64(1), product["isFavourite"])
		} else {
			assert.Equal(suite.T(), float64(0), product["isFavourite"])
		}
	}

	// Anonymous viewers see no flags
	w = suite.do(http.MethodGet, "/all_products", nil, "")
	for _, raw := range suite.decode(w)["products"].([]interface{}) {
		assert.Equal(suite.T(), float64(0), raw.(map[string]interface{})["isFavourite"])
	}

	w = suite.do(http.MethodGet, fmt.Sprintf("/favorites?userId=%d", user.ID), nil, "")
	assert.Len(suite.T(), suite.decode(w)["favorites"], 1)

	w = suite.do(http.MethodPost, "/favorites/add", map[string]interface{}{"userId": user.ID, "productId": 999}, "")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	remove := fmt.Sprintf("/favorites/remove?userId=%d&productId=%d", user.ID, lamp.ID)
	w = suite.do(http.MethodDelete, remove, nil, "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, remove, nil, "")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, fmt.Sprintf("/favorites/remove?userId=%d", user.ID), nil, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCart() {
	user := testutil.CreateUser(suite.T(), suite.db, "buyer", "buyer@example.com")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "12.00")

	raw := fmt.Sprintf(`{"userId":%d,"productId":%d,"quantity":3}`, user.ID, lamp.ID)
	w := suite.do(http.MethodPost, "/carts/add", raw, "")
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	var cart models.Cart
	require.NoError(suite.T(), suite.db.Where("user_id = ?", user.ID).First(&cart).Error)
	assert.Equal(suite.T(), 3, cart.Quantity)
	assert.Equal(suite.T(), raw, cart.Cart)

	w = suite.do(http.MethodGet, fmt.Sprintf("/carts?userId=%d", user.ID), nil, "")
	carts := suite.decode(w)["carts"].([]interface{})
	require.Len(suite.T(), carts, 1)
	assert.Equal(suite.T(), float64(1), carts[0].(map[string]interface{})["isInCart"])

	w = suite.do(http.MethodGet, "/carts", nil, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/carts/add", map[string]interface{}{"userId": user.ID, "productId": lamp.ID, "quantity": 0}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodDelete, fmt.Sprintf("/carts/remove?userId=%d&productId=%d", user.ID, lamp.ID), nil, "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(0), testutil.Count(suite.T(), suite.db, &models.Cart{}, ""))
}

func (suite *APITestSuite) TestHistory() {
	user := testutil.CreateUser(suite.T(), suite.db, "viewer", "viewer@example.com")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "12.00")
	chair := testutil.CreateProduct(suite.T(), suite.db, "Chair", "Oak", "furniture", "40.00")

	for _, p := range []*models.Product{lamp, chair} {
		w := suite.do(http.MethodPost, "/history/add", map[string]interface{}{"userId": user.ID, "productId": p.ID}, "")
		require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	}

	w := suite.do(http.MethodGet, fmt.Sprintf("/history?userId=%d", user.ID), nil, "")
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "2", w.Header().Get("X-Total-Count"))
	assert.Len(suite.T(), suite.decode(w)["history"], 2)

	w = suite.do(http.MethodDelete, fmt.Sprintf("/history/remove?userId=%d&productId=abc", user.ID), nil, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodDelete, fmt.Sprintf("/history/remove?userId=%d&productId=%d", user.ID, lamp.ID), nil, "")
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), float64(1), suite.decode(w)["removed"])

	w = suite.do(http.MethodDelete, fmt.Sprintf("/history/remove?userId=%d", user.ID), nil, "")
	require.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), "History cleared", response["message"])
	assert.Equal(suite.T(), float64(1), response["removed"])
	assert.Equal(suite.T(), int64(0), testutil.Count(suite.T(), suite.db, &models.History{}, ""))
}

func (suite *APITestSuite) TestReviews() {
	user := testutil.CreateUser(suite.T(), suite.db, "critic", "critic@example.com")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "12.00")

	w := suite.do(http.MethodPost, "/review/add", map[string]interface{}{
		"userId":    user.ID,
		"productId": lamp.ID,
		"review":    "Bright and sturdy",
	}, "")
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(suite.T(), float64(5), suite.decode(w)["review"].(map[string]interface{})["rating"])

	w = suite.do(http.MethodPost, "/review/add", map[string]interface{}{
		"userId":    user.ID,
		"productId": lamp.ID,
		"rating":    9,
		"review":    "Too bright",
	}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/review?productId=%d", lamp.ID), nil, "")
	assert.Len(suite.T(), suite.decode(w)["reviews"], 1)

	w = suite.do(http.MethodGet, "/review", nil, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestCheckoutWithToken() {
	userID, token := suite.register("buyer")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "10.25")
	chair := testutil.CreateProduct(suite.T(), suite.db, "Chair", "Oak", "furniture", "40.00")

	// The token wins over a user id in the body
	w := suite.do(http.MethodPost, "/address/add", map[string]interface{}{
		"userId":      999,
		"name":        "Home",
		"address":     "1 Main Street",
		"city":        "Lyon",
		"country":     "FR",
		"postal_code": "69001",
		"phone":       "0600000000",
	}, token)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	address := suite.decode(w)["address"].(map[string]interface{})
	assert.Equal(suite.T(), float64(userID), address["userId"])
	shippingID := uint(address["id"].(float64))

	for _, p := range []*models.Product{lamp, chair} {
		w = suite.do(http.MethodPost, "/carts/add", map[string]interface{}{"productId": p.ID}, token)
		require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	}

	w = suite.do(http.MethodPost, "/orders/add", map[string]interface{}{
		"shippingId":    shippingID,
		"paymentMethod": "card",
		"products":      []map[string]interface{}{{"productId": lamp.ID, "quantity": 2, "price": "10.25"}},
	}, token)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	order := suite.decode(w)["order"].(map[string]interface{})
	assert.Equal(suite.T(), "20.50", order["total_price"])
	assert.Equal(suite.T(), "pending", order["status"])
	assert.Len(suite.T(), order["items"], 1)

	// Only the ordered product leaves the cart
	assert.Equal(suite.T(), int64(1), testutil.Count(suite.T(), suite.db, &models.Cart{}, "user_id = ?", userID))

	w = suite.do(http.MethodGet, "/orders/get", nil, token)
	assert.Len(suite.T(), suite.decode(w)["orders"], 1)

	w = suite.do(http.MethodGet, "/notifications", nil, token)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), float64(2), suite.decode(w)["unread_count"])
}

func (suite *APITestSuite) TestCheckoutRejectsBadOrders() {
	buyer := testutil.CreateUser(suite.T(), suite.db, "buyer", "buyer@example.com")
	stranger := testutil.CreateUser(suite.T(), suite.db, "stranger", "stranger@example.com")
	lamp := testutil.CreateProduct(suite.T(), suite.db, "Lamp", "Lumen", "lighting", "10.25")
	foreign := testutil.CreateShipping(suite.T(), suite.db, stranger.ID)
	own := testutil.CreateShipping(suite.T(), suite.db, buyer.ID)

	w := suite.do(http.MethodPost, "/orders/add", map[string]interface{}{
		"userId":     buyer.ID,
		"shippingId": own.ID,
		"products":   []map[string]interface{}{},
	}, "")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), suite.decode(w)["errors"], "products")

	w = suite.do(http.MethodPost, "/orders/add", map[string]interface{}{
		"userId":     buyer.ID,
		"shippingId": foreign.ID,
		"products":   []map[string]interface{}{{"productId": lamp.ID}},
	}, "")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Shipping address not found", suite.decode(w)["message"])

	w = suite.do(http.MethodPost, "/orders/add", map[string]interface{}{
		"userId":     buyer.ID,
		"shippingId": own.ID,
		"products":   []map[string]interface{}{{"productId": lamp.ID}, {"productId": 999}},
	}, "")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	assert.Equal(suite.T(), int64(0), testutil.Count(suite.T(), suite.db, &models.Order{}, ""))
	assert.Equal(suite.T(), int64(0), testutil.Count(suite.T(), suite.db, &models.OrderItem{}, ""))
	assert.Equal(suite.T(), int64(0), testutil.Count(suite.T(), suite.db, &models.Notification{}, ""))
}
