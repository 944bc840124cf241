// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/config"
	"github.com/budgetwise/backend/internal/domain/entity"
	"github.com/budgetwise/backend/internal/infra/dependency"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
	"github.com/budgetwise/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	accessToken          string
	currentUserID        uuid.UUID
	userIDs              map[string]uuid.UUID
	categoryIDs          map[string]uuid.UUID
	currentCategoryID    uuid.UUID
	currentRuleID        uuid.UUID
	currentTransactionID uuid.UUID
	lastID               uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("budgetwise", map[string]any{
			"categories":     &model.CategoryModel{},
			"category_rules": &model.CategoryRuleModel{},
			"transactions":   &model.TransactionModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return c, nil
	})

	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Category setup steps
	ctx.Given(`^a category exists with name "([^"]*)"$`, test.aCategoryExistsWithName)
	ctx.Given(`^a fallback category exists with name "([^"]*)"$`, test.aFallbackCategoryExistsWithName)

	// Category rule setup steps
	ctx.Given(`^a category rule exists with pattern "([^"]*)" for category "([^"]*)"$`, test.aCategoryRuleExistsWithPatternForCategory)
	ctx.Given(`^an inactive category rule exists with pattern "([^"]*)" for category "([^"]*)"$`, test.anInactiveCategoryRuleExistsWithPatternForCategory)

	// Transaction setup steps
	ctx.Given(`^an uncategorized transaction exists with description "([^"]*)"$`, test.anUncategorizedTransactionExistsWithDescription)
	ctx.Given(`^a transaction exists with description "([^"]*)" in category "([^"]*)"$`, test.aTransactionExistsWithDescriptionInCategory)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response list "([^"]*)" should have (\d+) items$`, test.theResponseListShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.userIDs = make(map[string]uuid.UUID)
	t.categoryIDs = make(map[string]uuid.UUID)
	t.currentCategoryID = uuid.Nil
	t.currentRuleID = uuid.Nil
	t.currentTransactionID = uuid.Nil
	t.lastID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			cfg := config.Load()
			injector := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis())
			engine := injector.Router.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

// iAmLoggedInAs switches the current user to the given email, signing a
// fresh access token for them.
func (t *testContext) iAmLoggedInAs(email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		userID = uuid.New()
		t.userIDs[email] = userID
	}
	t.currentUserID = userID

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "budgetwise",
		"sub":        userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = tokenString
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) aCategoryExistsWithName(name string) error {
	return t.createCategory(name, entity.CategoryRoleNone)
}

func (t *testContext) aFallbackCategoryExistsWithName(name string) error {
	return t.createCategory(name, entity.CategoryRoleFallback)
}

func (t *testContext) createCategory(name string, role entity.CategoryRole) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID
	t.categoryIDs[name] = categoryID

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		Name:      name,
		Color:     entity.DefaultCategoryColor,
		Icon:      entity.DefaultCategoryIcon,
		Role:      string(role),
		UserID:    t.currentUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aCategoryRuleExistsWithPatternForCategory(pattern, categoryName string) error {
	return t.createRule(pattern, categoryName, true)
}

func (t *testContext) anInactiveCategoryRuleExistsWithPatternForCategory(pattern, categoryName string) error {
	return t.createRule(pattern, categoryName, false)
}

func (t *testContext) createRule(pattern, categoryName string, active bool) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q has not been created in this scenario", categoryName)
	}

	ruleID := uuid.New()
	t.currentRuleID = ruleID

	now := time.Now().UTC()
	ruleModel := &model.CategoryRuleModel{
		ID:         ruleID,
		Name:       pattern,
		Pattern:    pattern,
		CategoryID: categoryID,
		Priority:   10,
		IsActive:   active,
		UserID:     t.currentUserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return t.db.DbConn.Create(ruleModel).Error
}

func (t *testContext) anUncategorizedTransactionExistsWithDescription(description string) error {
	return t.createTransaction(description, nil)
}

func (t *testContext) aTransactionExistsWithDescriptionInCategory(description, categoryName string) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q has not been created in this scenario", categoryName)
	}
	return t.createTransaction(description, &categoryID)
}

func (t *testContext) createTransaction(description string, categoryID *uuid.UUID) error {
	transactionID := uuid.New()
	t.currentTransactionID = transactionID

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		ID:          transactionID,
		UserID:      t.currentUserID,
		Date:        now,
		Description: description,
		Amount:      decimal.NewFromFloat(42.50),
		Direction:   string(entity.TransactionDirectionDebit),
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return t.db.DbConn.Create(transactionModel).Error
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{rule_id}}", t.currentRuleID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.currentTransactionID.String())
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())

	for name, id := range t.categoryIDs {
		content = strings.ReplaceAll(content, "{{category_id:"+name+"}}", id.String())
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture the created resource ID if present
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	expectedValue = t.replacePlaceholders(expectedValue)

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseListShouldHaveItems(field string, expectedCount int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}

	if len(list) != expectedCount {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, expectedCount, len(list), list)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if modelEntity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(modelEntity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if modelEntity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(modelEntity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
