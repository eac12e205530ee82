package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-registry-api/config"
	"person-registry-api/internal/application/ports"
	domain "person-registry-api/internal/domain/person"
	"person-registry-api/internal/interface/api/rest/dto/person"
	"person-registry-api/internal/interface/api/rest/validator"
)

const msgInvalidID = "id must be a positive integer"

type PersonController struct {
	personService ports.PersonService
	logger        *zap.Logger
	page          config.Page
}

func NewPersonController(
	r *gin.Engine,
	personService ports.PersonService,
	logger *zap.Logger,
	page config.Page,
) *PersonController {
	pc := &PersonController{
		personService: personService,
		logger:        logger,
		page:          page,
	}

	r.GET(RoutePersons, pc.GetPersonsHandler)
	r.GET(RoutePerson, pc.GetPersonHandler)
	r.GET(RoutePersonAge, pc.GetPersonAgeHandler)
	r.POST(RoutePersons, pc.CreatePersonHandler)
	r.PUT(RoutePerson, pc.UpdatePersonHandler)
	r.DELETE(RoutePerson, pc.DeletePersonHandler)

	return pc
}

func (pc *PersonController) GetPersonsHandler(c *gin.Context) {
	page, size, errs := validator.ValidatePage(c.Query("page"), c.Query("size"), pc.page.DefaultSize, pc.page.MaxSize)
	if errs != nil {
		writeError(c, pc.logger, "FindPersons()", &ValidationError{Fields: errs})
		return
	}

	pg, err := pc.personService.FindPersons(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, pc.logger, "FindPersons()", err)
		return
	}

	c.JSON(http.StatusOK, person.ToResponsePage(*pg))
}

func (pc *PersonController) GetPersonHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		writeError(c, pc.logger, "FindPersonByID()", invalidField("id", msgInvalidID))
		return
	}

	p, err := pc.personService.FindPersonByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, pc.logger, "FindPersonByID()", err)
		return
	}

	c.JSON(http.StatusOK, person.ToResponsePerson(*p))
}

func (pc *PersonController) GetPersonAgeHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		writeError(c, pc.logger, "CalculateAge()", invalidField("id", msgInvalidID))
		return
	}

	msg, err := pc.personService.CalculateAge(c.Request.Context(), id)
	if err != nil {
		writeError(c, pc.logger, "CalculateAge()", err)
		return
	}

	c.String(http.StatusOK, msg)
}

func (pc *PersonController) CreatePersonHandler(c *gin.Context) {
	p, ok := pc.bindPerson(c, "CreatePerson()")
	if !ok {
		return
	}

	created, err := pc.personService.CreatePerson(c.Request.Context(), p)
	if err != nil {
		writeError(c, pc.logger, "CreatePerson()", err)
		return
	}

	c.JSON(http.StatusCreated, person.ToResponsePerson(*created))
}

func (pc *PersonController) UpdatePersonHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		writeError(c, pc.logger, "UpdatePerson()", invalidField("id", msgInvalidID))
		return
	}

	p, ok := pc.bindPerson(c, "UpdatePerson()")
	if !ok {
		return
	}

	updated, err := pc.personService.UpdatePerson(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, pc.logger, "UpdatePerson()", err)
		return
	}

	c.JSON(http.StatusOK, person.ToResponsePerson(*updated))
}

func (pc *PersonController) DeletePersonHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		writeError(c, pc.logger, "DeletePerson()", invalidField("id", msgInvalidID))
		return
	}

	if err := pc.personService.DeletePerson(c.Request.Context(), id); err != nil {
		writeError(c, pc.logger, "DeletePerson()", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindPerson decodes and validates the body. On failure the error response is
// already written.
func (pc *PersonController) bindPerson(c *gin.Context, op string) (domain.Person, bool) {
	var req person.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, pc.logger, op, errMalformedBody)
		return domain.Person{}, false
	}
	if errs := validator.ValidatePerson(req); errs != nil {
		writeError(c, pc.logger, op, &ValidationError{Fields: errs})
		return domain.Person{}, false
	}

	p, err := person.ToDomainPerson(req)
	if err != nil {
		writeError(c, pc.logger, op, invalidField("dateOfBirth", err.Error()))
		return domain.Person{}, false
	}

	return p, true
}
