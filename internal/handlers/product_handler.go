package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Ad-Abhishek/product-api/internal/docs"
	"github.com/Ad-Abhishek/product-api/internal/middleware"
	"github.com/Ad-Abhishek/product-api/internal/models"
	"github.com/Ad-Abhishek/product-api/internal/repositories"
	"github.com/Ad-Abhishek/product-api/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// productRoute pairs a route descriptor with the ordered handler chain
// that serves it. The descriptor drives both registration and the
// generated documentation, so the two cannot disagree.
type productRoute struct {
	docs.Route
	chain []fiber.Handler
}

func (h *ProductHandler) routes() []productRoute {
	validateBody := middleware.ValidateProductBody()

	return []productRoute{
		{
			Route: docs.Route{
				Method:      fiber.MethodGet,
				Path:        "/products",
				Summary:     "List all products",
				OperationID: "listProducts",
				Tags:        []string{"products"},
				Responses: map[int]docs.Response{
					fiber.StatusOK:                  {Description: "All products", Schema: "Product", Array: true},
					fiber.StatusInternalServerError: {Description: "Unexpected failure", Schema: "Error"},
				},
			},
			chain: []fiber.Handler{h.HandleGetProducts},
		},
		{
			Route: docs.Route{
				Method:      fiber.MethodGet,
				Path:        "/products/:id",
				Summary:     "Get a product by ID",
				OperationID: "getProductByID",
				Tags:        []string{"products"},
				Responses: map[int]docs.Response{
					fiber.StatusOK:                  {Description: "The requested product", Schema: "Product"},
					fiber.StatusNotFound:            {Description: "No product with that ID", Schema: "Error"},
					fiber.StatusInternalServerError: {Description: "Unexpected failure", Schema: "Error"},
				},
			},
			chain: []fiber.Handler{h.HandleGetProductByID},
		},
		{
			Route: docs.Route{
				Method:        fiber.MethodPost,
				Path:          "/products",
				Summary:       "Create a product",
				OperationID:   "createProduct",
				Tags:          []string{"products"},
				RequestSchema: "ProductRequest",
				Responses: map[int]docs.Response{
					fiber.StatusCreated:             {Description: "The created product, including its assigned ID", Schema: "Product"},
					fiber.StatusBadRequest:          {Description: "Malformed or incomplete payload", Schema: "Error"},
					fiber.StatusInternalServerError: {Description: "Unexpected failure", Schema: "Error"},
				},
			},
			chain: []fiber.Handler{validateBody, h.HandleCreateProduct},
		},
		{
			Route: docs.Route{
				Method:        fiber.MethodPut,
				Path:          "/products/:id",
				Summary:       "Update a product",
				OperationID:   "updateProduct",
				Tags:          []string{"products"},
				RequestSchema: "ProductRequest",
				Responses: map[int]docs.Response{
					fiber.StatusOK:                  {Description: "The updated product", Schema: "Product"},
					fiber.StatusBadRequest:          {Description: "Malformed or incomplete payload", Schema: "Error"},
					fiber.StatusNotFound:            {Description: "No product with that ID", Schema: "Error"},
					fiber.StatusInternalServerError: {Description: "Unexpected failure", Schema: "Error"},
				},
			},
			chain: []fiber.Handler{validateBody, h.HandleUpdateProduct},
		},
		{
			Route: docs.Route{
				Method:      fiber.MethodDelete,
				Path:        "/products/:id",
				Summary:     "Delete a product",
				OperationID: "deleteProduct",
				Tags:        []string{"products"},
				Responses: map[int]docs.Response{
					fiber.StatusOK:                  {Description: "Deletion confirmation", Schema: "Message"},
					fiber.StatusNotFound:            {Description: "No product with that ID", Schema: "Error"},
					fiber.StatusInternalServerError: {Description: "Unexpected failure", Schema: "Error"},
				},
			},
			chain: []fiber.Handler{h.HandleDeleteProduct},
		},
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	for _, rt := range h.routes() {
		router.Add(rt.Method, rt.Path, rt.chain...)
	}
}

// DocRoutes returns the route descriptors for the documentation generator.
func (h *ProductHandler) DocRoutes() []docs.Route {
	routes := h.routes()
	out := make([]docs.Route, 0, len(routes))
	for _, rt := range routes {
		out = append(out, rt.Route)
	}
	return out
}

// APISchemas returns the named component schemas referenced by the
// product route table.
func APISchemas() map[string]*docs.Schema {
	return map[string]*docs.Schema{
		"Product": {
			Type: "object",
			Properties: map[string]*docs.Schema{
				"id":    {Type: "integer", Format: "int64", ReadOnly: true, Example: 1},
				"name":  {Type: "string", MaxLength: docs.Int(100), Example: "Chair"},
				"price": {Type: "number", Format: "double", Minimum: docs.Float64(0), Example: 49.99},
				"color": {Type: "string", MaxLength: docs.Int(50), Example: "red"},
				"stock": {Type: "integer", Minimum: docs.Float64(0), Example: 10},
			},
			Required: []string{"id", "name", "price", "stock"},
		},
		"ProductRequest": {
			Type: "object",
			Properties: map[string]*docs.Schema{
				"name":  {Type: "string", MaxLength: docs.Int(100), Example: "Chair"},
				"price": {Type: "number", Format: "double", Minimum: docs.Float64(0), Example: 49.99},
				"color": {Type: "string", MaxLength: docs.Int(50), Example: "red"},
				"stock": {Type: "integer", Minimum: docs.Float64(0), Example: 10},
			},
			Required: []string{"name", "price", "stock"},
		},
		"Error": {
			Type: "object",
			Properties: map[string]*docs.Schema{
				"message": {Type: "string"},
				"error":   {Type: "string"},
				"errors": {
					Type:       "object",
					Properties: map[string]*docs.Schema{},
				},
			},
			Required: []string{"message"},
		},
		"Message": {
			Type: "object",
			Properties: map[string]*docs.Schema{
				"message": {Type: "string"},
			},
			Required: []string{"message"},
		},
	}
}

// parseProductID extracts the numeric :id path parameter. A non-numeric id
// cannot name an existing record, so callers answer 404 on error.
func parseProductID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// HandleGetProducts retrieves all products. An empty catalog is a success
// with an empty array, not an error.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %d not found", id),
			})
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from the payload the
// validation middleware left in Locals.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req := c.Locals(middleware.ProductPayloadKey).(models.ProductRequest)

	product := req.ToProduct()
	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces an existing product with the validated
// payload. The ID is immutable and comes from the path.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	}

	req := c.Locals(middleware.ProductPayloadKey).(models.ProductRequest)

	product, err := h.service.UpdateProduct(id, req)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %d not found", id),
			})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %d not found", id),
			})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d deleted successfully", id),
	})
}
