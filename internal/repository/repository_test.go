package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the GORM repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	users    UserRepository
	projects ProjectRepository
	tasks    TaskRepository
	jobs     JobRepository
	lookups  LookupRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig(logger.Silent))
	suite.Require().NoError(err)

	// every connection to :memory: is a separate database
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.Migrate(suite.db, zap.NewNop()))

	suite.users = NewUserRepository(suite.db)
	suite.projects = NewProjectRepository(suite.db)
	suite.tasks = NewTaskRepository(suite.db)
	suite.jobs = NewJobRepository(suite.db)
	suite.lookups = NewLookupRepository(suite.db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) createClient(first, last string) *models.Client {
	client := models.NewClient(first, last)
	suite.Require().NoError(suite.users.CreateClient(client))
	return client
}

func (suite *RepositoryTestSuite) createEmployee(first, last string) *models.Employee {
	employee := models.NewEmployee(first, last, 0, nil)
	suite.Require().NoError(suite.users.CreateEmployee(employee))
	return employee
}

func (suite *RepositoryTestSuite) createProject(client *models.Client, title string, start time.Time) *models.Project {
	project := models.NewProject(client, title, start)
	suite.Require().NoError(suite.projects.Create(project, models.ActorRef(client.BaseUserID)))
	return project
}

func (suite *RepositoryTestSuite) createTask(project *models.Project, title string) *models.Task {
	task := models.NewTask(title)
	task.ProjectID = project.ID
	suite.Require().NoError(suite.tasks.Create(task, models.NoActor))
	return task
}

func (suite *RepositoryTestSuite) TestCreateClient_CreatesBaseUser() {
	client := suite.createClient("Ann", "Lee")

	suite.NotZero(client.ID)
	suite.NotZero(client.BaseUserID)
	suite.Equal(client.BaseUserID, client.User.ID)

	found, err := suite.users.FindClientByID(client.ID)
	suite.Require().NoError(err)
	base, err := found.BaseUser()
	suite.Require().NoError(err)
	suite.Equal("Ann Lee", base.FullName())
}

func (suite *RepositoryTestSuite) TestCreateEmployee_Defaults() {
	employee := suite.createEmployee("Bob", "Stone")

	found, err := suite.users.FindEmployeeByUserID(employee.BaseUserID)
	suite.Require().NoError(err)
	suite.Equal(employee.ID, found.ID)
	suite.Equal(0, found.TimeZone)
	suite.Nil(found.BirthDate)
	suite.Equal("Bob", found.User.FirstName)

	_, err = suite.users.FindEmployeeByID(employee.ID + 100)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestCreateClient_MissingUser() {
	err := suite.users.CreateClient(&models.Client{})
	suite.ErrorIs(err, ErrCreateUser)
}

func (suite *RepositoryTestSuite) TestAttachAuthorization_FindByLogin() {
	client := suite.createClient("Ann", "Lee")
	auth, err := models.NewAuthorization("ann", "supersecret")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.users.AttachAuthorization(client.BaseUserID, auth))

	user, err := suite.users.FindByLogin("ann")
	suite.Require().NoError(err)
	suite.Equal(client.BaseUserID, user.ID)
	suite.Require().NotNil(user.Authorization)
	suite.True(user.Authorization.CheckPassword("supersecret"))

	other := suite.createClient("Ann", "Other")
	again, err := models.NewAuthorization("ann", "anothersecret")
	suite.Require().NoError(err)
	suite.Error(suite.users.AttachAuthorization(other.BaseUserID, again))
}

func (suite *RepositoryTestSuite) TestAttachAuthorization_UnknownUser() {
	auth, err := models.NewAuthorization("ghost", "supersecret")
	suite.Require().NoError(err)

	err = suite.users.AttachAuthorization(999, auth)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.users.FindByLogin("ghost")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestContacts() {
	client := suite.createClient("Ann", "Lee")

	phone := models.NewContactInfo(models.ContactPhone, "+1 555 0100")
	phone.UserID = client.BaseUserID
	suite.Require().NoError(suite.users.AddContact(phone))

	email := models.NewContactInfo(models.ContactPrimaryEmail, "ann@example.com")
	email.UserID = client.BaseUserID
	suite.Require().NoError(suite.users.AddContact(email))

	dup := models.NewContactInfo(models.ContactPhone, "+1 555 0199")
	dup.UserID = client.BaseUserID
	suite.Error(suite.users.AddContact(dup))

	contacts, err := suite.users.ListContacts(client.BaseUserID)
	suite.Require().NoError(err)
	suite.Require().Len(contacts, 2)
	suite.Equal("primary_email", contacts[0].TypeName())
	suite.Equal("phone", contacts[1].TypeName())
	suite.Equal("+1 555 0100", contacts[1].Contact)

	user, err := suite.users.FindUserByID(client.BaseUserID)
	suite.Require().NoError(err)
	suite.Len(user.Contacts, 2)
}

func (suite *RepositoryTestSuite) TestProjectCreate_StampsEntity() {
	client := suite.createClient("Ann", "Lee")
	project := suite.createProject(client, "Website", models.Today())

	found, err := suite.projects.FindByID(project.ID)
	suite.Require().NoError(err)
	suite.Equal("Website", found.Title)
	suite.Equal("active", found.StatusName())
	suite.True(found.MonthPayment.Equal(decimal.Zero))
	suite.Require().NotNil(found.Entity)
	suite.Require().NotNil(found.Entity.CreatedByUserID)
	suite.Equal(client.BaseUserID, *found.Entity.CreatedByUserID)
	suite.Nil(found.Entity.Deleted)
	suite.Require().NotNil(found.Client)
	suite.Equal("Lee", found.Client.User.LastName)
}

func (suite *RepositoryTestSuite) TestProjectUpdate_TouchesEntity() {
	client := suite.createClient("Ann", "Lee")
	editor := suite.createEmployee("Bob", "Stone")
	project := suite.createProject(client, "Website", models.Today())

	project.Title = "Website v2"
	project.StatusID = models.ProjectCompleted
	project.MonthPayment = decimal.RequireFromString("1250.50")
	suite.Require().NoError(suite.projects.Update(project, models.ActorRef(editor.BaseUserID)))

	found, err := suite.projects.FindByID(project.ID)
	suite.Require().NoError(err)
	suite.Equal("Website v2", found.Title)
	suite.Equal("completed", found.StatusName())
	suite.Equal("1250.5", found.MonthPayment.String())
	suite.Equal(editor.BaseUserID, *found.Entity.UpdatedByUserID)
	suite.Equal(client.BaseUserID, *found.Entity.CreatedByUserID)
}

func (suite *RepositoryTestSuite) TestProjectList_FiltersAndPaginates() {
	ann := suite.createClient("Ann", "Lee")
	bob := suite.createClient("Bob", "Stone")
	today := models.Today()

	suite.createProject(ann, "Old", today.AddDate(0, -2, 0))
	suite.createProject(ann, "New", today)
	closed := suite.createProject(bob, "Closed", today)
	closed.StatusID = models.ProjectClosed
	suite.Require().NoError(suite.projects.Update(closed, models.NoActor))

	projects, total, err := suite.projects.List(ProjectFilter{
		ClientID:   &ann.ID,
		Pagination: utils.NewPaginationParams(1, 1),
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(projects, 1)
	suite.Equal("New", projects[0].Title)

	status := models.ProjectClosed
	projects, total, err = suite.projects.List(ProjectFilter{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(projects, 1)
	suite.Equal("closed", projects[0].StatusName())
}

func (suite *RepositoryTestSuite) TestProjectSoftDelete_HidesProject() {
	client := suite.createClient("Ann", "Lee")
	project := suite.createProject(client, "Website", models.Today())

	suite.Require().NoError(suite.projects.SoftDelete(project.ID, models.ActorRef(client.BaseUserID)))

	_, err := suite.projects.FindByID(project.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, total, err := suite.projects.List(ProjectFilter{})
	suite.Require().NoError(err)
	suite.Zero(total)

	suite.ErrorIs(suite.projects.SoftDelete(project.ID, models.NoActor), gorm.ErrRecordNotFound)

	var entity models.Entity
	suite.Require().NoError(suite.db.First(&entity, project.AuditEntityID).Error)
	suite.Require().NotNil(entity.Deleted)
	suite.NoError(entity.Validate())
}

func (suite *RepositoryTestSuite) TestTaskPushes_OwnerFollowsLatestPush() {
	client := suite.createClient("Ann", "Lee")
	lee := suite.createEmployee("Lee", "Park")
	kim := suite.createEmployee("Kim", "Cho")
	project := suite.createProject(client, "Website", models.Today())
	task := suite.createTask(project, "Landing page")

	first := models.NewTaskPush("please take it", nil, lee)
	first.TaskID = task.ID
	first.Date = time.Now().Add(-time.Hour)
	suite.Require().NoError(suite.tasks.AddPush(first))

	second := models.NewTaskPush("handing over", lee, kim)
	second.TaskID = task.ID
	suite.Require().NoError(suite.tasks.AddPush(second))

	found, err := suite.tasks.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(found.Pushes, 2)
	suite.Equal("please take it", found.Pushes[0].Comment)
	suite.Nil(found.Pushes[0].PushByEmployeeID)

	ownerID, err := found.OwnerID()
	suite.Require().NoError(err)
	suite.Equal(kim.ID, ownerID)

	owner, err := found.Owner()
	suite.Require().NoError(err)
	suite.Equal("Kim", owner.User.FirstName)
}

func (suite *RepositoryTestSuite) TestTaskListByProject() {
	client := suite.createClient("Ann", "Lee")
	project := suite.createProject(client, "Website", models.Today())
	other := suite.createProject(client, "Other", models.Today())

	suite.createTask(project, "First")
	second := suite.createTask(project, "Second")
	suite.createTask(other, "Elsewhere")

	tasks, total, err := suite.tasks.ListByProject(project.ID, utils.NewPaginationParams(1, 20))
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(tasks, 2)
	suite.Equal(second.ID, tasks[0].ID)
	suite.Equal("new", tasks[0].StatusName())

	suite.Require().NoError(suite.tasks.SoftDelete(second.ID, models.NoActor))
	tasks, total, err = suite.tasks.ListByProject(project.ID, utils.NewPaginationParams(1, 20))
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("First", tasks[0].Title)
}

func (suite *RepositoryTestSuite) TestTaskUpdate() {
	client := suite.createClient("Ann", "Lee")
	project := suite.createProject(client, "Website", models.Today())
	task := suite.createTask(project, "First")

	task.StatusID = models.TaskFixed
	suite.Require().NoError(suite.tasks.Update(task, models.ActorRef(client.BaseUserID)))

	found, err := suite.tasks.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal("fixed", found.StatusName())
	suite.Equal(client.BaseUserID, *found.Entity.UpdatedByUserID)
	suite.Nil(found.Entity.CreatedByUserID)
}

func (suite *RepositoryTestSuite) TestJobs_TotalMinutes() {
	client := suite.createClient("Ann", "Lee")
	project := suite.createProject(client, "Website", models.Today())
	task := suite.createTask(project, "First")

	total, err := suite.jobs.TotalMinutes(task.ID)
	suite.Require().NoError(err)
	suite.Zero(total)

	for _, minutes := range []int{30, 45} {
		job, err := models.NewJob("work", minutes)
		suite.Require().NoError(err)
		job.TaskID = task.ID
		suite.Require().NoError(suite.jobs.Create(job, models.ActorRef(client.BaseUserID)))
	}

	jobs, err := suite.jobs.ListByTask(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 2)
	suite.Equal(30, jobs[0].DurationMinutes)

	total, err = suite.jobs.TotalMinutes(task.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(75), total)

	suite.Require().NoError(suite.db.Transaction(func(tx *gorm.DB) error {
		return softDeleteEntity(tx, jobs[0].AuditEntityID, models.NoActor)
	}))

	total, err = suite.jobs.TotalMinutes(task.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(45), total)
}

func (suite *RepositoryTestSuite) TestLookups_Seeded() {
	// seeding twice keeps one row per code
	suite.Require().NoError(database.SeedLookups(suite.db))

	types, err := suite.lookups.ListContactInfoTypes()
	suite.Require().NoError(err)
	suite.Require().Len(types, 4)
	suite.Equal(models.ContactPrimaryEmail, types[1].ID)
	suite.Equal("primary_email", types[1].TypeName)

	projectStatuses, err := suite.lookups.ListProjectStatuses()
	suite.Require().NoError(err)
	suite.Len(projectStatuses, 3)

	taskStatuses, err := suite.lookups.ListTaskStatuses()
	suite.Require().NoError(err)
	suite.Require().Len(taskStatuses, 6)
	suite.Equal("cancelled", taskStatuses[5].StatusName)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestLiveEntities_RendersSubquery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	assert.NoError(t, err)

	stmt := db.Scopes(liveEntities).Find(&[]models.Project{}).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "`Projects`.`EntityID` IN (SELECT")
	assert.Contains(t, sql, "`Deleted` IS NULL")
}
