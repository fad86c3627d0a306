package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker/internal/dto"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
)

// TaskHandlerTestSuite drives projects, tasks, pushes and jobs through the router
type TaskHandlerTestSuite struct {
	suite.Suite
	env      testEnv
	cookies  []*http.Cookie
	client   dto.ClientDTO
	employee dto.EmployeeDTO
}

// SetupTest registers a client and a logged-in employee before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())

	w := suite.env.do(suite.T(), http.MethodPost, "/api/clients", map[string]string{
		"first_name": "Ann",
		"last_name":  "Lee",
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &suite.client))

	w = suite.env.do(suite.T(), http.MethodPost, "/api/employees", map[string]string{
		"first_name": "Lee",
		"last_name":  "Park",
		"login":      "lee",
		"password":   "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &suite.employee))

	suite.cookies = suite.env.login(suite.T(), "lee", "supersecret")
}

func (suite *TaskHandlerTestSuite) request(method, path string, body interface{}) (int, map[string]interface{}) {
	w := suite.env.do(suite.T(), method, path, body, suite.cookies)
	return w.Code, decode(suite.T(), w)
}

func (suite *TaskHandlerTestSuite) createProject(title string) dto.ProjectDTO {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/projects", map[string]interface{}{
		"client_id": suite.client.ID,
		"title":     title,
	}, suite.cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &project))
	return project
}

func (suite *TaskHandlerTestSuite) createTask(projectID uint64, title string) dto.TaskDTO {
	w := suite.env.do(suite.T(), http.MethodPost, "/api/projects/"+itoa(projectID)+"/tasks", map[string]string{
		"title": title,
	}, suite.cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

// TestProjects_RequireAuth tests access without a session
func (suite *TaskHandlerTestSuite) TestProjects_RequireAuth() {
	w := suite.env.do(suite.T(), http.MethodGet, "/api/projects", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestCreateProject_Success tests project defaults and audit stamping
func (suite *TaskHandlerTestSuite) TestCreateProject_Success() {
	project := suite.createProject("Website")

	assert.Equal(suite.T(), "active", project.StatusName)
	assert.True(suite.T(), project.MonthPayment.IsZero())
	suite.Require().NotNil(project.Audit)
	suite.Require().NotNil(project.Audit.CreatedByUserID)
	assert.Equal(suite.T(), suite.employee.User.ID, *project.Audit.CreatedByUserID)
	assert.Nil(suite.T(), project.Audit.Deleted)

	code, body := suite.request(http.MethodGet, "/api/projects/"+itoa(project.ID), nil)
	suite.Require().Equal(http.StatusOK, code)
	audit := body["audit"].(map[string]interface{})
	assert.Equal(suite.T(), float64(suite.employee.User.ID), audit["created_by_user_id"])
	client := body["client"].(map[string]interface{})
	assert.Equal(suite.T(), float64(suite.client.ID), client["id"])
	assert.Equal(suite.T(), "Ann", client["user"].(map[string]interface{})["first_name"])
}

// TestCreateProject_UnknownClient tests creating a project for a missing client
func (suite *TaskHandlerTestSuite) TestCreateProject_UnknownClient() {
	code, body := suite.request(http.MethodPost, "/api/projects", map[string]interface{}{
		"client_id": 999,
		"title":     "Website",
	})
	assert.Equal(suite.T(), http.StatusNotFound, code)
	assert.Equal(suite.T(), apierrors.ErrCodeNotFound, body["code"])
}

// TestUpdateAndDeleteProject tests status changes and soft deletion
func (suite *TaskHandlerTestSuite) TestUpdateAndDeleteProject() {
	project := suite.createProject("Website")
	path := "/api/projects/" + itoa(project.ID)

	code, body := suite.request(http.MethodPatch, path, map[string]interface{}{
		"status_id":     2,
		"month_payment": "1500.25",
	})
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), "completed", body["status_name"])
	assert.Equal(suite.T(), "1500.25", body["month_payment"])

	code, _ = suite.request(http.MethodPatch, path, map[string]interface{}{"status_id": 9})
	assert.Equal(suite.T(), http.StatusBadRequest, code)

	code, body = suite.request(http.MethodGet, "/api/projects?status=2", nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Len(suite.T(), body["projects"], 1)

	code, _ = suite.request(http.MethodDelete, path, nil)
	suite.Require().Equal(http.StatusOK, code)

	code, _ = suite.request(http.MethodGet, path, nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)

	code, body = suite.request(http.MethodGet, "/api/projects", nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Empty(suite.T(), body["projects"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), pagination["total"])
}

// TestTaskOwnership tests push history and owner derivation
func (suite *TaskHandlerTestSuite) TestTaskOwnership() {
	project := suite.createProject("Website")
	task := suite.createTask(project.ID, "Landing page")
	path := "/api/tasks/" + itoa(task.ID)

	assert.Equal(suite.T(), "new", task.StatusName)
	assert.Nil(suite.T(), task.OwnerID)

	code, body := suite.request(http.MethodGet, path+"/owner", nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)
	assert.Equal(suite.T(), apierrors.ErrCodeNoOwner, body["code"])

	code, body = suite.request(http.MethodPost, path+"/pushes", map[string]interface{}{
		"to_employee_id": suite.employee.ID,
		"comment":        "yours now",
	})
	suite.Require().Equal(http.StatusCreated, code)
	assert.Equal(suite.T(), float64(suite.employee.ID), body["push_by_employee_id"])
	assert.Equal(suite.T(), float64(suite.employee.ID), body["push_to_employee_id"])

	code, body = suite.request(http.MethodGet, path, nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), float64(suite.employee.ID), body["owner_id"])
	assert.Len(suite.T(), body["pushes"], 1)
	audit := body["audit"].(map[string]interface{})
	assert.Equal(suite.T(), float64(suite.employee.User.ID), audit["created_by_user_id"])

	code, body = suite.request(http.MethodGet, path+"/owner", nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), float64(suite.employee.ID), body["id"])
	user := body["user"].(map[string]interface{})
	assert.Equal(suite.T(), float64(suite.employee.User.ID), user["id"])
	assert.Equal(suite.T(), "Lee", user["first_name"])

	code, _ = suite.request(http.MethodPost, path+"/pushes", map[string]interface{}{
		"to_employee_id": 999,
	})
	assert.Equal(suite.T(), http.StatusNotFound, code)
}

// TestUpdateTask_AnyStatus tests that any status may follow any other
func (suite *TaskHandlerTestSuite) TestUpdateTask_AnyStatus() {
	project := suite.createProject("Website")
	task := suite.createTask(project.ID, "Landing page")
	path := "/api/tasks/" + itoa(task.ID)

	code, body := suite.request(http.MethodPatch, path, map[string]interface{}{"status_id": 5})
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), "completed", body["status_name"])

	code, body = suite.request(http.MethodPatch, path, map[string]interface{}{
		"status_id": 1,
		"title":     "Landing page v2",
	})
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), "new", body["status_name"])
	assert.Equal(suite.T(), "Landing page v2", body["title"])

	code, _ = suite.request(http.MethodPatch, path, map[string]interface{}{"status_id": 7})
	assert.Equal(suite.T(), http.StatusBadRequest, code)
}

// TestDeleteTask tests that deleted tasks disappear
func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	project := suite.createProject("Website")
	task := suite.createTask(project.ID, "Landing page")
	path := "/api/tasks/" + itoa(task.ID)

	code, _ := suite.request(http.MethodDelete, path, nil)
	suite.Require().Equal(http.StatusOK, code)

	code, _ = suite.request(http.MethodGet, path, nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)

	code, body := suite.request(http.MethodGet, "/api/projects/"+itoa(project.ID)+"/tasks", nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Empty(suite.T(), body["tasks"])
}

// TestTasksOfDeletedProject tests that a deleted project hides its tasks
func (suite *TaskHandlerTestSuite) TestTasksOfDeletedProject() {
	project := suite.createProject("Website")
	task := suite.createTask(project.ID, "Landing page")
	path := "/api/tasks/" + itoa(task.ID)

	code, _ := suite.request(http.MethodDelete, "/api/projects/"+itoa(project.ID), nil)
	suite.Require().Equal(http.StatusOK, code)

	code, body := suite.request(http.MethodGet, path, nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)
	assert.Equal(suite.T(), apierrors.ErrCodeNotFound, body["code"])

	code, _ = suite.request(http.MethodPost, path+"/jobs", map[string]interface{}{
		"description":      "layout",
		"duration_minutes": 30,
	})
	assert.Equal(suite.T(), http.StatusNotFound, code)

	code, _ = suite.request(http.MethodPost, path+"/pushes", map[string]interface{}{
		"to_employee_id": suite.employee.ID,
	})
	assert.Equal(suite.T(), http.StatusNotFound, code)
}

// TestJobs tests logging time and the total
func (suite *TaskHandlerTestSuite) TestJobs() {
	project := suite.createProject("Website")
	task := suite.createTask(project.ID, "Landing page")
	path := "/api/tasks/" + itoa(task.ID) + "/jobs"

	code, _ := suite.request(http.MethodPost, path, map[string]interface{}{
		"description":      "nothing",
		"duration_minutes": 0,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, code)

	for _, minutes := range []int{30, 50} {
		code, _ = suite.request(http.MethodPost, path, map[string]interface{}{
			"description":      "layout",
			"duration_minutes": minutes,
		})
		suite.Require().Equal(http.StatusCreated, code)
	}

	code, body := suite.request(http.MethodGet, path, nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), float64(80), body["total_minutes"])
	assert.Len(suite.T(), body["jobs"], 2)
}

// TestTask_InvalidID tests a malformed task id
func (suite *TaskHandlerTestSuite) TestTask_InvalidID() {
	code, body := suite.request(http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, code)
	assert.Equal(suite.T(), apierrors.ErrCodeInvalidFormat, body["code"])

	code, _ = suite.request(http.MethodGet, "/api/tasks/12345", nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
